package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/go-api-runtime/authz"
	"github.com/jsamuelsen/go-api-runtime/internal/adapters/http/dto"
	"github.com/jsamuelsen/go-api-runtime/internal/platform/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestRequestIDMiddleware tests the RequestID middleware.
func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		existingHeaderID string
		expectGenerated  bool
	}{
		{
			name:             "generates UUID when no header present",
			existingHeaderID: "",
			expectGenerated:  true,
		},
		{
			name:             "passes through existing header",
			existingHeaderID: "existing-req-123",
			expectGenerated:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var capturedID string
			var capturedContextID string

			router := gin.New()
			router.Use(RequestID())
			router.GET("/test", func(c *gin.Context) {
				capturedID = GetRequestID(c)
				capturedContextID = RequestIDFromContext(c.Request.Context())
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.existingHeaderID != "" {
				req.Header.Set(HeaderRequestID, tt.existingHeaderID)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			// Check response header is set
			responseHeader := w.Header().Get(HeaderRequestID)
			assert.NotEmpty(t, responseHeader)

			// Check ID is stored in gin context
			assert.NotEmpty(t, capturedID)
			assert.Equal(t, responseHeader, capturedID)

			// Check ID is stored in context.Context
			assert.Equal(t, capturedID, capturedContextID)

			if !tt.expectGenerated {
				assert.Equal(t, tt.existingHeaderID, capturedID)
			}
		})
	}
}

// TestCorrelationIDMiddleware tests the CorrelationID middleware.
func TestCorrelationIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		existingHeaderID string
		expectGenerated  bool
	}{
		{
			name:             "generates UUID when no header present",
			existingHeaderID: "",
			expectGenerated:  true,
		},
		{
			name:             "passes through existing header",
			existingHeaderID: "existing-corr-456",
			expectGenerated:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var capturedID string
			var capturedContextID string

			router := gin.New()
			router.Use(CorrelationID())
			router.GET("/test", func(c *gin.Context) {
				capturedID = GetCorrelationID(c)
				capturedContextID = CorrelationIDFromContext(c.Request.Context())
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.existingHeaderID != "" {
				req.Header.Set(HeaderCorrelationID, tt.existingHeaderID)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			// Check response header is set
			responseHeader := w.Header().Get(HeaderCorrelationID)
			assert.NotEmpty(t, responseHeader)

			// Check ID is stored in gin context
			assert.NotEmpty(t, capturedID)
			assert.Equal(t, responseHeader, capturedID)

			// Check ID is stored in context.Context
			assert.Equal(t, capturedID, capturedContextID)

			if !tt.expectGenerated {
				assert.Equal(t, tt.existingHeaderID, capturedID)
			}
		})
	}
}

// TestGetRequestID tests the GetRequestID function.
func TestGetRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setupCtx func(*gin.Context)
		expected string
	}{
		{
			name: "returns value when set",
			setupCtx: func(c *gin.Context) {
				c.Set(ContextKeyRequestID, "test-id")
			},
			expected: "test-id",
		},
		{
			name:     "returns empty when not set",
			setupCtx: func(c *gin.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			tt.setupCtx(c)

			result := GetRequestID(c)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestMustGetRequestID tests the MustGetRequestID function.
func TestMustGetRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setupCtx func(*gin.Context)
		expected string
	}{
		{
			name: "returns value when set",
			setupCtx: func(c *gin.Context) {
				c.Set(ContextKeyRequestID, "test-id")
			},
			expected: "test-id",
		},
		{
			name:     "returns unknown when not set",
			setupCtx: func(c *gin.Context) {},
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			tt.setupCtx(c)

			result := MustGetRequestID(c)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestGetCorrelationID tests the GetCorrelationID function.
func TestGetCorrelationID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setupCtx func(*gin.Context)
		expected string
	}{
		{
			name: "returns value when set",
			setupCtx: func(c *gin.Context) {
				c.Set(ContextKeyCorrelationID, "corr-id")
			},
			expected: "corr-id",
		},
		{
			name:     "returns empty when not set",
			setupCtx: func(c *gin.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			tt.setupCtx(c)

			result := GetCorrelationID(c)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestMustGetCorrelationID tests the MustGetCorrelationID function.
func TestMustGetCorrelationID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setupCtx func(*gin.Context)
		expected string
	}{
		{
			name: "returns value when set",
			setupCtx: func(c *gin.Context) {
				c.Set(ContextKeyCorrelationID, "corr-id")
			},
			expected: "corr-id",
		},
		{
			name:     "returns unknown when not set",
			setupCtx: func(c *gin.Context) {},
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			tt.setupCtx(c)

			result := MustGetCorrelationID(c)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestCredentials tests the Credentials middleware.
func TestCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cfg        config.AuthConfig
		setHeaders func(*http.Request)
		expected   authz.AuthData
		expectNone bool
	}{
		{
			name: "parses basic credentials",
			setHeaders: func(req *http.Request) {
				req.SetBasicAuth("alice", "hunter2")
			},
			expected: authz.NewBasic("alice", "hunter2"),
		},
		{
			name: "parses bearer token",
			setHeaders: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer tok-123")
			},
			expected: authz.NewBearer("tok-123"),
		},
		{
			name: "parses api key from default header",
			setHeaders: func(req *http.Request) {
				req.Header.Set(config.DefaultAPIKeyHeader, "key-123")
			},
			expected: authz.NewAPIKey("key-123"),
		},
		{
			name: "parses api key from configured header",
			cfg:  config.AuthConfig{APIKeyHeader: "X-Service-Key"},
			setHeaders: func(req *http.Request) {
				req.Header.Set("X-Service-Key", "key-456")
			},
			expected: authz.NewAPIKey("key-456"),
		},
		{
			name: "authorization header wins over api key header",
			setHeaders: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer tok-789")
				req.Header.Set(config.DefaultAPIKeyHeader, "key-789")
			},
			expected: authz.NewBearer("tok-789"),
		},
		{
			name:       "no credentials leaves context empty",
			setHeaders: func(req *http.Request) {},
			expectNone: true,
		},
		{
			name: "unknown authorization scheme is ignored",
			setHeaders: func(req *http.Request) {
				req.Header.Set("Authorization", "Digest username=alice")
			},
			expectNone: true,
		},
		{
			name: "malformed basic credentials are ignored",
			setHeaders: func(req *http.Request) {
				req.Header.Set("Authorization", "Basic not-valid-base64!!!")
			},
			expectNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var captured authz.AuthData
			var found bool

			router := gin.New()
			router.Use(Credentials(tt.cfg))
			router.GET("/test", func(c *gin.Context) {
				captured, found = authz.AuthDataFromContext(c.Request.Context())
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.setHeaders(req)

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			if tt.expectNone {
				assert.False(t, found, "no credential should be stored")
				return
			}

			require.True(t, found, "credential should be stored in context")
			assert.Equal(t, tt.expected, captured)
		})
	}
}

// TestCredentialsNeverRejects verifies that the middleware only attaches
// credentials and leaves rejection to the verification layer.
func TestCredentialsNeverRejects(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(Credentials(config.AuthConfig{}))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Basic %%%")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogging(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("logs normal request", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Logging(logger))
		router.GET("/api/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/test", nil)

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("skips /-/ paths", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Logging(logger))
		router.GET("/-/health", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/-/health", nil)

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("logs path with query string", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Logging(logger))
		router.GET("/api/search", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/search?q=hello&limit=10", nil)

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("logs 500 error at error level", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Logging(logger))
		router.GET("/api/error", func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/error", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("logs 400 error at warn level", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Logging(logger))
		router.GET("/api/bad", func(c *gin.Context) {
			c.Status(http.StatusBadRequest)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bad", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestLoggingWithSkipPaths tests the LoggingWithSkipPaths middleware.
func TestLoggingWithSkipPaths(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("skips exact path match", func(t *testing.T) {
		t.Parallel()
		router := gin.New()
		router.Use(LoggingWithSkipPaths(logger, []string{"/metrics"}))
		router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("skips /-/ prefix", func(t *testing.T) {
		t.Parallel()
		router := gin.New()
		router.Use(LoggingWithSkipPaths(logger, nil))
		router.GET("/-/ready", func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("logs non-skipped path with query", func(t *testing.T) {
		t.Parallel()
		router := gin.New()
		router.Use(LoggingWithSkipPaths(logger, []string{"/metrics"}))
		router.GET("/api/data", func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/data?page=1", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("logs 500 at error level", func(t *testing.T) {
		t.Parallel()
		router := gin.New()
		router.Use(LoggingWithSkipPaths(logger, nil))
		router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("logs 400 at warn level", func(t *testing.T) {
		t.Parallel()
		router := gin.New()
		router.Use(LoggingWithSkipPaths(logger, nil))
		router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestRecovery tests the Recovery middleware.
func TestRecovery(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("normal request passes through", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(logger))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("panicking handler returns 500", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(logger))
		router.GET("/test", func(c *gin.Context) {
			panic("something went wrong")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal error")
	})
}

// TestRecoveryWithWriter tests the RecoveryWithWriter middleware.
func TestRecoveryWithWriter(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("calls stack handler on panic", func(t *testing.T) {
		t.Parallel()

		var capturedErr any
		var capturedStack []byte

		stackHandler := func(err any, stack []byte) {
			capturedErr = err
			capturedStack = stack
		}

		router := gin.New()
		router.Use(RecoveryWithWriter(logger, stackHandler))
		router.GET("/test", func(c *gin.Context) {
			panic("test panic")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "test panic", capturedErr)
		assert.NotEmpty(t, capturedStack)
		assert.Contains(t, string(capturedStack), "panic")
	})

	t.Run("logs through fallback logger when context has none", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		fallback := slog.New(slog.NewTextHandler(&buf, nil))

		router := gin.New()
		router.Use(RecoveryWithWriter(fallback, nil))
		router.GET("/test", func(c *gin.Context) {
			panic("early panic")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, buf.String(), "panic recovered")
		assert.Contains(t, buf.String(), "early panic")
	})
}

// TestSimpleTimeout tests the SimpleTimeout middleware.
func TestSimpleTimeout(t *testing.T) {
	t.Parallel()

	t.Run("sets context deadline", func(t *testing.T) {
		t.Parallel()

		var hasDeadline bool

		router := gin.New()
		router.Use(SimpleTimeout(5 * time.Second))
		router.GET("/test", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, hasDeadline, "context should have deadline")
	})
}

// TestTimeout tests the Timeout middleware.
func TestTimeout_SetsContextDeadline(t *testing.T) {
	t.Parallel()

	var hasDeadline bool

	router := gin.New()
	// Use SimpleTimeout which doesn't use goroutines and is race-free
	router.Use(SimpleTimeout(5 * time.Second))
	router.GET("/test", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hasDeadline, "request context should have deadline")
}

// TestTimeout_ExpiredDeadlineAnswers504 exercises the timeout response
// directly; the status must agree with dto.HTTPStatusFromCode.
func TestTimeout_ExpiredDeadlineAnswers504(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	respondTimeout(c, time.Millisecond)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeTimeout, resp.Error.Code)
	assert.Equal(t, w.Code, dto.HTTPStatusFromCode(resp.Error.Code))
}

// TestTimeoutWithSkipPaths tests the TimeoutWithSkipPaths middleware.
// Note: TimeoutWithSkipPaths uses goroutines for non-skipped paths (like Timeout),
// which creates data races with gin's context. We only test the skip path logic here.
func TestTimeoutWithSkipPaths(t *testing.T) {
	t.Parallel()

	t.Run("skips timeout for specified paths", func(t *testing.T) {
		t.Parallel()

		var hasDeadline bool

		router := gin.New()
		router.Use(TimeoutWithSkipPaths(1*time.Second, []string{"/uploads"}))
		router.POST("/uploads", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/uploads", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, hasDeadline, "skipped path should not have deadline")
	})
}

func TestGinString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setupCtx func(*gin.Context)
		key      string
		expected string
	}{
		{
			name: "returns ID when string value exists",
			setupCtx: func(c *gin.Context) {
				c.Set("test-key", "test-value")
			},
			key:      "test-key",
			expected: "test-value",
		},
		{
			name:     "returns empty when key not exists",
			setupCtx: func(c *gin.Context) {},
			key:      "test-key",
			expected: "",
		},
		{
			name: "returns empty when value is not string",
			setupCtx: func(c *gin.Context) {
				c.Set("test-key", 123)
			},
			key:      "test-key",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			tt.setupCtx(c)

			result := ginString(c, tt.key)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestContextStorageIntegration tests integration between ID middleware and context storage.
func TestContextStorageIntegration(t *testing.T) {
	t.Parallel()

	t.Run("RequestID middleware stores ID in both contexts", func(t *testing.T) {
		t.Parallel()

		var ginContextID string
		var stdContextID string

		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			ginContextID = GetRequestID(c)
			stdContextID = RequestIDFromContext(c.Request.Context())
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderRequestID, "integration-test-id")

		router.ServeHTTP(w, req)

		assert.Equal(t, "integration-test-id", ginContextID)
		assert.Equal(t, "integration-test-id", stdContextID)
		assert.Equal(t, ginContextID, stdContextID)
	})

	t.Run("CorrelationID middleware stores ID in both contexts", func(t *testing.T) {
		t.Parallel()

		var ginContextID string
		var stdContextID string

		router := gin.New()
		router.Use(CorrelationID())
		router.GET("/test", func(c *gin.Context) {
			ginContextID = GetCorrelationID(c)
			stdContextID = CorrelationIDFromContext(c.Request.Context())
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderCorrelationID, "integration-corr-id")

		router.ServeHTTP(w, req)

		assert.Equal(t, "integration-corr-id", ginContextID)
		assert.Equal(t, "integration-corr-id", stdContextID)
		assert.Equal(t, ginContextID, stdContextID)
	})
}

// TestUUIDGeneration tests that generated IDs are valid UUIDs.
func TestUUIDGeneration(t *testing.T) {
	t.Parallel()

	t.Run("RequestID generates valid UUID", func(t *testing.T) {
		t.Parallel()

		var generatedID string

		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			generatedID = GetRequestID(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		router.ServeHTTP(w, req)

		assert.NotEmpty(t, generatedID)
		// UUID v4 format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`, generatedID)
	})

	t.Run("CorrelationID generates valid UUID", func(t *testing.T) {
		t.Parallel()

		var generatedID string

		router := gin.New()
		router.Use(CorrelationID())
		router.GET("/test", func(c *gin.Context) {
			generatedID = GetCorrelationID(c)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		router.ServeHTTP(w, req)

		assert.NotEmpty(t, generatedID)
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`, generatedID)
	})
}
