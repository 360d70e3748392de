package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Verlux Stands API",
        "description": "Marketing site and admin CMS for Verlux Stands",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "System",
            "description": "Health, readiness and metrics"
        },
        {
            "name": "Auth",
            "description": "Admin login with optional TOTP step"
        },
        {
            "name": "TOTP",
            "description": "Two-factor setup and settings"
        },
        {
            "name": "Pages",
            "description": "Public builder pages"
        },
        {
            "name": "Page Builder",
            "description": "Section editing for admins"
        },
        {
            "name": "SEO",
            "description": "Per-page metadata and sitemap"
        },
        {
            "name": "Events",
            "description": "Trade show calendar"
        },
        {
            "name": "Analytics",
            "description": "Page view tracking"
        },
        {
            "name": "Dashboard",
            "description": "Admin overview"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Readiness check against the tree store",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Store unavailable"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "Metrics"
                    }
                }
            }
        },
        "/sitemap.xml": {
            "get": {
                "tags": [
                    "SEO"
                ],
                "summary": "Sitemap of indexable pages",
                "produces": [
                    "application/xml"
                ],
                "responses": {
                    "200": {
                        "description": "sitemaps.org urlset"
                    }
                }
            }
        },
        "/p/{slug}": {
            "get": {
                "tags": [
                    "Pages"
                ],
                "summary": "Render a published page",
                "produces": [
                    "text/html"
                ],
                "parameters": [
                    {
                        "in": "path",
                        "name": "slug",
                        "type": "string",
                        "required": true,
                        "description": "Page slug; use ~ for /"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "HTML document"
                    },
                    "404": {
                        "description": "Not found"
                    }
                }
            }
        },
        "/api/track": {
            "post": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Record a page view",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TrackRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Tracking result",
                        "schema": {
                            "$ref": "#/definitions/TrackResponse"
                        }
                    },
                    "403": {
                        "description": "Admin pages not tracked"
                    }
                }
            },
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Raw analytics tree",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    }
                }
            }
        },
        "/api/totp/verify": {
            "post": {
                "tags": [
                    "TOTP"
                ],
                "summary": "Check a code against a secret",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/VerifyTOTPRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "{valid: bool}"
                    },
                    "400": {
                        "description": "Missing secret or code"
                    }
                }
            }
        },
        "/api/totp/setup": {
            "post": {
                "tags": [
                    "TOTP"
                ],
                "summary": "Generate a secret and QR code",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TOTPSetupRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/totp/settings": {
            "get": {
                "tags": [
                    "TOTP"
                ],
                "summary": "Read TOTP status",
                "parameters": [
                    {
                        "in": "query",
                        "name": "email",
                        "type": "string",
                        "required": false,
                        "description": "Account email"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "TOTP"
                ],
                "summary": "Enable or disable TOTP",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TOTPSettingsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/pages/{slug}": {
            "get": {
                "tags": [
                    "Pages"
                ],
                "summary": "Resolve a published page configuration",
                "parameters": [
                    {
                        "in": "path",
                        "name": "slug",
                        "type": "string",
                        "required": true,
                        "description": "Page slug; use ~ for /"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/seo/{slug}": {
            "get": {
                "tags": [
                    "SEO"
                ],
                "summary": "SEO record with metadata and schema",
                "parameters": [
                    {
                        "in": "path",
                        "name": "slug",
                        "type": "string",
                        "required": true,
                        "description": "Page slug; use ~ for /"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "tags": [
                    "Events"
                ],
                "summary": "List events in calendar order",
                "parameters": [
                    {
                        "in": "query",
                        "name": "status",
                        "type": "string",
                        "required": false,
                        "description": "Upcoming, Ongoing, Completed or Cancelled"
                    },
                    {
                        "in": "query",
                        "name": "category",
                        "type": "string",
                        "required": false,
                        "description": ""
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/events/{id}": {
            "get": {
                "tags": [
                    "Events"
                ],
                "summary": "Get one event",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Event id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Submit email and password",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login status",
                        "schema": {
                            "$ref": "#/definitions/LoginStatus"
                        }
                    },
                    "401": {
                        "description": "Invalid credentials"
                    },
                    "429": {
                        "description": "Rate limited"
                    }
                }
            }
        },
        "/api/v1/auth/totp": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Submit the TOTP code of a pending login",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/TOTPCodeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login status",
                        "schema": {
                            "$ref": "#/definitions/LoginStatus"
                        }
                    },
                    "409": {
                        "description": "No pending challenge"
                    },
                    "429": {
                        "description": "Too many invalid codes or rate limited"
                    }
                }
            }
        },
        "/api/v1/auth/login/cancel": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Abandon a pending login",
                "responses": {
                    "200": {
                        "description": "Login status",
                        "schema": {
                            "$ref": "#/definitions/LoginStatus"
                        }
                    }
                }
            }
        },
        "/api/v1/auth/session": {
            "get": {
                "tags": [
                    "Auth"
                ],
                "summary": "Current login status",
                "responses": {
                    "200": {
                        "description": "Login status",
                        "schema": {
                            "$ref": "#/definitions/LoginStatus"
                        }
                    }
                }
            }
        },
        "/api/v1/auth/refresh": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Exchange a refresh token",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Sign out",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/auth/me": {
            "get": {
                "tags": [
                    "Auth"
                ],
                "summary": "Current admin profile",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/auth/change-password": {
            "post": {
                "tags": [
                    "Auth"
                ],
                "summary": "Change the admin password",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/dashboard": {
            "get": {
                "tags": [
                    "Dashboard"
                ],
                "summary": "Admin dashboard counts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/analytics": {
            "get": {
                "tags": [
                    "Analytics"
                ],
                "summary": "Aggregated page views",
                "parameters": [
                    {
                        "in": "query",
                        "name": "range",
                        "type": "string",
                        "required": false,
                        "description": "7d, 30d, 90d or all"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/sections": {
            "get": {
                "tags": [
                    "Pages"
                ],
                "summary": "Section catalog",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/metrics": {
            "get": {
                "tags": [
                    "System"
                ],
                "summary": "Process counters",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/seo": {
            "get": {
                "tags": [
                    "SEO"
                ],
                "summary": "List SEO records with validation",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "SEO"
                ],
                "summary": "Create an SEO record",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SEOPage"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Exists"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/seo/validate": {
            "post": {
                "tags": [
                    "SEO"
                ],
                "summary": "Score an SEO record",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SEOPage"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/seo/seed": {
            "post": {
                "tags": [
                    "SEO"
                ],
                "summary": "Write the built-in records whose slugs are free",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/seo/{slug}": {
            "put": {
                "tags": [
                    "SEO"
                ],
                "summary": "Update an SEO record",
                "parameters": [
                    {
                        "in": "path",
                        "name": "slug",
                        "type": "string",
                        "required": true,
                        "description": "Page slug; use ~ for /"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/SEOPage"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "SEO"
                ],
                "summary": "Delete an SEO record",
                "parameters": [
                    {
                        "in": "path",
                        "name": "slug",
                        "type": "string",
                        "required": true,
                        "description": "Page slug; use ~ for /"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/pages": {
            "get": {
                "tags": [
                    "Page Builder"
                ],
                "summary": "List builder pages",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Page Builder"
                ],
                "summary": "Create a builder page",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/CreatePageRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/pages/{slug}": {
            "get": {
                "tags": [
                    "Page Builder"
                ],
                "summary": "Get a builder page",
                "parameters": [
                    {
                        "in": "path",
                        "name": "slug",
                        "type": "string",
                        "required": true,
                        "description": "Page slug; use ~ for /"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "Page Builder"
                ],
                "summary": "Save a builder page",
                "parameters": [
                    {
                        "in": "path",
                        "name": "slug",
                        "type": "string",
                        "required": true,
                        "description": "Page slug; use ~ for /"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Page Builder"
                ],
                "summary": "Delete a builder page",
                "parameters": [
                    {
                        "in": "path",
                        "name": "slug",
                        "type": "string",
                        "required": true,
                        "description": "Page slug; use ~ for /"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/pages/{slug}/reorder": {
            "post": {
                "tags": [
                    "Page Builder"
                ],
                "summary": "Move a section",
                "parameters": [
                    {
                        "in": "path",
                        "name": "slug",
                        "type": "string",
                        "required": true,
                        "description": "Page slug; use ~ for /"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ReorderRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/pages/{slug}/sections": {
            "post": {
                "tags": [
                    "Page Builder"
                ],
                "summary": "Append a section",
                "parameters": [
                    {
                        "in": "path",
                        "name": "slug",
                        "type": "string",
                        "required": true,
                        "description": "Page slug; use ~ for /"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AddSectionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/pages/{slug}/sections/{sectionId}": {
            "delete": {
                "tags": [
                    "Page Builder"
                ],
                "summary": "Remove a section",
                "parameters": [
                    {
                        "in": "path",
                        "name": "slug",
                        "type": "string",
                        "required": true,
                        "description": "Page slug; use ~ for /"
                    },
                    {
                        "in": "path",
                        "name": "sectionId",
                        "type": "string",
                        "required": true,
                        "description": ""
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/events": {
            "get": {
                "tags": [
                    "Events"
                ],
                "summary": "List events",
                "parameters": [
                    {
                        "in": "query",
                        "name": "status",
                        "type": "string",
                        "required": false,
                        "description": ""
                    },
                    {
                        "in": "query",
                        "name": "category",
                        "type": "string",
                        "required": false,
                        "description": ""
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Events"
                ],
                "summary": "Create an event",
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Event"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/events/export": {
            "get": {
                "tags": [
                    "Events"
                ],
                "summary": "Export the calendar",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "in": "query",
                        "name": "format",
                        "type": "string",
                        "required": false,
                        "description": "csv or pdf"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/events/{id}": {
            "put": {
                "tags": [
                    "Events"
                ],
                "summary": "Update an event",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Event id"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Event"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Events"
                ],
                "summary": "Delete an event",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Event id"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/events/{id}/cancel": {
            "post": {
                "tags": [
                    "Events"
                ],
                "summary": "Cancel an event",
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "type": "string",
                        "required": true,
                        "description": "Event id"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "TrackRequest": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "device": {
                    "type": "string"
                },
                "referrer": {
                    "type": "string"
                }
            }
        },
        "TrackResponse": {
            "type": "object",
            "properties": {
                "ok": {
                    "type": "boolean"
                },
                "counted": {
                    "type": "boolean"
                }
            }
        },
        "VerifyTOTPRequest": {
            "type": "object",
            "properties": {
                "secret": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                }
            }
        },
        "TOTPSetupRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                }
            }
        },
        "TOTPSettingsRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "action": {
                    "type": "string",
                    "enum": [
                        "enable",
                        "disable"
                    ]
                },
                "secret": {
                    "type": "string"
                },
                "code": {
                    "type": "string"
                }
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "TOTPCodeRequest": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                }
            }
        },
        "LoginStatus": {
            "type": "object",
            "properties": {
                "state": {
                    "type": "string",
                    "enum": [
                        "ANONYMOUS",
                        "PRIMARY_PENDING",
                        "TOTP_REQUIRED",
                        "TOTP_PENDING",
                        "AUTHENTICATED"
                    ]
                },
                "totpRequired": {
                    "type": "boolean"
                },
                "user": {
                    "type": "object"
                },
                "session": {
                    "type": "object"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "SEOPage": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "keywords": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "canonical": {
                    "type": "string"
                },
                "ogImage": {
                    "type": "string"
                },
                "schemaType": {
                    "type": "string"
                },
                "index": {
                    "type": "boolean"
                },
                "follow": {
                    "type": "boolean"
                }
            }
        },
        "CreatePageRequest": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "layout": {
                    "type": "string"
                },
                "sections": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "isPublished": {
                    "type": "boolean"
                }
            }
        },
        "ReorderRequest": {
            "type": "object",
            "properties": {
                "sourceId": {
                    "type": "string"
                },
                "targetId": {
                    "type": "string"
                }
            }
        },
        "AddSectionRequest": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "props": {
                    "type": "object"
                }
            }
        },
        "Event": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "startDate": {
                    "type": "string"
                },
                "endDate": {
                    "type": "string"
                },
                "location": {
                    "type": "string"
                },
                "attendees": {
                    "type": "string"
                },
                "bookingDeadline": {
                    "type": "string"
                },
                "image": {
                    "type": "string"
                },
                "isCancelled": {
                    "type": "boolean"
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
