package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"linkherald/internal/logger"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSecret(t *testing.T) {
	log := logger.New("error", false)

	tests := []struct {
		name           string
		secret         string
		header         string
		query          string
		expectedStatus int
	}{
		{
			name:           "no secret configured passes everything",
			secret:         "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "matching header",
			secret:         "s3cr3t",
			header:         "s3cr3t",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "matching query parameter",
			secret:         "s3cr3t",
			query:          "s3cr3t",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong secret",
			secret:         "s3cr3t",
			header:         "wrong",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing secret",
			secret:         "s3cr3t",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "header beats query on mismatch",
			secret:         "s3cr3t",
			header:         "wrong",
			query:          "s3cr3t",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/webhook/linkding"
			if tt.query != "" {
				target += "?secret=" + tt.query
			}
			req := httptest.NewRequest(http.MethodPost, target, nil)
			if tt.header != "" {
				req.Header.Set(SecretHeader, tt.header)
			}

			rr := httptest.NewRecorder()
			RequireSecret(tt.secret, log)(okHandler()).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}
