package http

import (
	"context"
	"net/http"
	"testing"

	"lendcircle-backend/internal/adapter/middleware"
	domainUser "lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/testutil/loanmock"
	"lendcircle-backend/internal/testutil/participantmock"
	"lendcircle-backend/internal/testutil/usermock"
	useruc "lendcircle-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func userRoutes(users *usermock.Repo) *echo.Echo {
	uc := useruc.NewUsecase(users, &loanmock.Repo{}, &participantmock.Repo{})
	h := NewUserHandler(uc)

	e := newEcho()
	api := e.Group("", middleware.JWTAuth(testSecret))
	api.GET("/user/profile", h.Profile)
	api.GET("/user/dashboard", h.Dashboard)
	api.GET("/user/portfolio", h.Portfolio)
	return e
}

func TestProfileEndpoint(t *testing.T) {
	users := &usermock.Repo{
		GetByUserIDFn: func(_ context.Context, id string) (*domainUser.User, error) {
			if id == tBorrowerID {
				return &domainUser.User{UserID: id, Name: "Bob", Email: "bob@example.com", IsBorrower: true}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	e := userRoutes(users)

	rec := doJSON(t, e, http.MethodGet, "/user/profile", nil,
		bearerFor(t, tBorrowerID, "bob@example.com", "borrower"))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["name"] != "Bob" || body["is_borrower"] != true {
		t.Errorf("profile: %v", body)
	}

	if rec := doJSON(t, e, http.MethodGet, "/user/profile", nil, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token => want 401, got %d", rec.Code)
	}
}

func TestPortfolioEndpoint_RequiresLenderRole(t *testing.T) {
	users := &usermock.Repo{
		GetByUserIDFn: func(_ context.Context, id string) (*domainUser.User, error) {
			return &domainUser.User{UserID: id, Name: "Bob", IsBorrower: true}, nil
		},
	}
	e := userRoutes(users)

	rec := doJSON(t, e, http.MethodGet, "/user/portfolio", nil,
		bearerFor(t, tBorrowerID, "bob@example.com", "borrower"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("want 403, got %d body=%s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["error"] != "INSUFFICIENT_ROLE" {
		t.Errorf("error code = %v", body["error"])
	}
}

func TestDashboardEndpoint(t *testing.T) {
	users := &usermock.Repo{
		GetByUserIDFn: func(_ context.Context, id string) (*domainUser.User, error) {
			return &domainUser.User{UserID: id, Name: "Carol", Email: "carol@example.com", IsLender: true}, nil
		},
	}
	e := userRoutes(users)

	rec := doJSON(t, e, http.MethodGet, "/user/dashboard", nil,
		bearerFor(t, tLenderID, "carol@example.com", "lender"))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if _, ok := body["lender"]; !ok {
		t.Errorf("lender stats missing: %v", body)
	}
	if _, ok := body["borrower"]; ok {
		t.Errorf("borrower stats present without the role: %v", body)
	}
}
