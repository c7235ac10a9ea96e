package http

import (
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rynok-dev/marketplace-backend/internal/domain"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
)

func TestToHTTPResponse(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"product not found", e.ErrProductNotFound, http.StatusNotFound},
		{"category not found", e.ErrCategoryNotFound, http.StatusNotFound},
		{"request not found", e.ErrPaymentRequestNotFound, http.StatusNotFound},
		{"missing fields", e.ErrMissingFields, http.StatusBadRequest},
		{"invalid price", e.ErrInvalidPrice, http.StatusBadRequest},
		{"price precision", e.ErrPricePrecision, http.StatusBadRequest},
		{"invalid status", e.ErrInvalidStatus, http.StatusBadRequest},
		{"invalid flag", e.ErrInvalidFlag, http.StatusBadRequest},
		{"unauthenticated", e.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", e.ErrForbidden, http.StatusForbidden},
		{"quantity too small", e.ErrQuantityTooSmall, http.StatusUnprocessableEntity},
		{"category in use", e.ErrCategoryInUse, http.StatusUnprocessableEntity},
		{"unknown error", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := ToHTTPResponse(tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestToHTTPResponseWrapped(t *testing.T) {
	wrapped := e.Wrap("PaymentUseCase.Transition", e.Wrap("repo", e.ErrForbidden))

	code, msg := ToHTTPResponse(wrapped)
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	// Клиенту уходит текст терминальной ошибки, без внутренней цепочки.
	if msg != e.ErrForbidden.Error() {
		t.Fatalf("expected %q, got %q", e.ErrForbidden.Error(), msg)
	}
}

func TestToHTTPResponseHidesInternals(t *testing.T) {
	_, msg := ToHTTPResponse(e.Wrap("pg: connection refused", context.Canceled))
	if msg != e.ErrInternalServerError.Error() {
		t.Fatalf("internal details leaked: %q", msg)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"integer", "100", "100", nil},
		{"two decimals", "19.99", "19.99", nil},
		{"empty", "", "", e.ErrMissingFields},
		{"not a number", "abc", "", e.ErrInvalidPrice},
		{"three decimals", "19.999", "", e.ErrPricePrecision},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parsePrice(tc.input)
			if tc.wantErr != nil {
				if err == nil || err != tc.wantErr {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	if _, err := parseQuantity("abc"); err != e.ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := parseQuantity(""); err != e.ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}

	q, err := parseQuantity("3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q != 3 {
		t.Fatalf("expected 3, got %d", q)
	}
}

func TestParseOptionalFlag(t *testing.T) {
	withForm := func(vals map[string][]string) *http.Request {
		r := httptest.NewRequest(http.MethodPut, "/", nil)
		r.MultipartForm = &multipart.Form{Value: vals}
		return r
	}

	t.Run("absent field keeps current value", func(t *testing.T) {
		got, err := parseOptionalFlag(withForm(map[string][]string{}), "is_active")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil for absent field, got %v", *got)
		}
	})

	t.Run("accepts ParseBool spellings", func(t *testing.T) {
		cases := map[string]bool{"true": true, "1": true, "false": false, "0": false, "f": false}
		for input, want := range cases {
			got, err := parseOptionalFlag(withForm(map[string][]string{"is_active": {input}}), "is_active")
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", input, err)
			}
			if got == nil || *got != want {
				t.Errorf("%q: got %v, want %v", input, got, want)
			}
		}
	})

	t.Run("garbage is rejected, not coerced to true", func(t *testing.T) {
		_, err := parseOptionalFlag(withForm(map[string][]string{"is_active": {"off"}}), "is_active")
		if err != e.ErrInvalidFlag {
			t.Fatalf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, e.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, _ int64) error { return nil }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

func TestAuthMiddleware(t *testing.T) {
	repo := &fakeUserRepo{users: map[int64]*domain.User{
		7: {ID: 7, Username: "seller", FirstName: "Сергей"},
	}}
	mw := NewAuthMiddleware(repo, nopLogger{})

	var got domain.Principal
	var resolved bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, resolved = domain.Principal{}, false
		if p, err := PrincipalFromCtx(r.Context()); err == nil {
			got, resolved = p, true
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.Resolve(inner)

	t.Run("valid header resolves principal", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-User-Id", "7")
		handler.ServeHTTP(httptest.NewRecorder(), r)

		if !resolved {
			t.Fatal("expected principal in context")
		}
		if got.UserID != 7 || got.FirstName != "Сергей" {
			t.Fatalf("unexpected principal: %+v", got)
		}
	})

	t.Run("missing header passes through anonymously", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if resolved {
			t.Fatal("expected anonymous request")
		}
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("unknown user stays anonymous", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-User-Id", "99")
		handler.ServeHTTP(httptest.NewRecorder(), r)

		if resolved {
			t.Fatal("expected anonymous request")
		}
	})
}

func TestRequireAuth(t *testing.T) {
	protected := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous gets 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("resolved principal passes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(r.Context(), principalKey, domain.Principal{UserID: 7})
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r.WithContext(ctx))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
