package auth

import (
	"testing"
	"time"

	"github.com/prn-tf/package-catalog/internal/domain"
)

func TestCanCreate(t *testing.T) {
	if CanCreate(nil) {
		t.Error("CanCreate(nil) = true, want false")
	}
	if !CanCreate(&domain.User{ID: 1, Role: domain.RoleStandard}) {
		t.Error("CanCreate(standard user) = false, want true")
	}
	if !CanCreate(&domain.User{ID: 2, Role: domain.RoleAdmin}) {
		t.Error("CanCreate(admin) = false, want true")
	}
}

func TestCanMutate(t *testing.T) {
	pkg := &domain.Package{UserID: 1}

	tests := []struct {
		name string
		user *domain.User
		want bool
	}{
		{"anonymous", nil, false},
		{"owner", &domain.User{ID: 1, Role: domain.RoleStandard}, true},
		{"other standard user", &domain.User{ID: 2, Role: domain.RoleStandard}, false},
		// Admins see everything but mutate nothing they don't own.
		{"admin non-owner", &domain.User{ID: 3, Role: domain.RoleAdmin}, false},
		{"admin owner", &domain.User{ID: 1, Role: domain.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutate(tt.user, pkg); got != tt.want {
				t.Errorf("CanMutate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScopeForListRoles(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	standard := &domain.User{ID: 7, Role: domain.RoleStandard}

	adminQuery := ScopeForList(admin, ListFilter{})
	if adminQuery.OwnerID != nil {
		t.Errorf("admin scope OwnerID = %v, want nil", *adminQuery.OwnerID)
	}
	if !adminQuery.IncludeOwner {
		t.Error("admin scope IncludeOwner = false, want true")
	}

	standardQuery := ScopeForList(standard, ListFilter{})
	if standardQuery.OwnerID == nil || *standardQuery.OwnerID != 7 {
		t.Errorf("standard scope OwnerID = %v, want 7", standardQuery.OwnerID)
	}
	if standardQuery.IncludeOwner {
		t.Error("standard scope IncludeOwner = true, want false")
	}
}

func TestScopeForListFilterPrecedence(t *testing.T) {
	user := &domain.User{ID: 1, Role: domain.RoleStandard}

	exact := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		filter     ListFilter
		wantEquals *time.Time
		wantBefore *time.Time
		wantAfter  *time.Time
	}{
		{
			name:       "exact only",
			filter:     ListFilter{ExpirationDate: &exact},
			wantEquals: &exact,
		},
		{
			name:       "bound overwrites exact",
			filter:     ListFilter{ExpirationDate: &exact, ExpirationDateBefore: &before},
			wantBefore: &before,
		},
		{
			name:       "both bounds combine",
			filter:     ListFilter{ExpirationDateBefore: &before, ExpirationDateAfter: &after},
			wantBefore: &before,
			wantAfter:  &after,
		},
		{
			name:       "exact loses to both bounds",
			filter:     ListFilter{ExpirationDate: &exact, ExpirationDateBefore: &before, ExpirationDateAfter: &after},
			wantBefore: &before,
			wantAfter:  &after,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := ScopeForList(user, tt.filter)

			if !equalTimePtr(query.ExpirationEquals, tt.wantEquals) {
				t.Errorf("ExpirationEquals = %v, want %v", query.ExpirationEquals, tt.wantEquals)
			}
			if !equalTimePtr(query.ExpirationBefore, tt.wantBefore) {
				t.Errorf("ExpirationBefore = %v, want %v", query.ExpirationBefore, tt.wantBefore)
			}
			if !equalTimePtr(query.ExpirationAfter, tt.wantAfter) {
				t.Errorf("ExpirationAfter = %v, want %v", query.ExpirationAfter, tt.wantAfter)
			}
		})
	}
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
