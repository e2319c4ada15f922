package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/api/models"
)

type ownedResource struct {
	owner string
}

func (r ownedResource) Owner() string { return r.owner }

var (
	anonymous *models.User
	regular   = &models.User{ID: "user-1", Role: models.RoleUser}
	author    = &models.User{ID: "author-1", Role: models.RoleUser}
	moderator = &models.User{ID: "mod-1", Role: models.RoleModerator}
	admin     = &models.User{ID: "admin-1", Role: models.RoleAdmin}
)

func TestContentPolicy(t *testing.T) {
	p := Content{}
	resource := ownedResource{owner: "author-1"}

	tests := []struct {
		name     string
		subject  *models.User
		action   Action
		resource Resource
		want     bool
	}{
		{"anonymous reads", anonymous, ActionRead, resource, true},
		{"anonymous cannot create", anonymous, ActionCreate, nil, false},
		{"anonymous cannot update", anonymous, ActionUpdate, resource, false},
		{"authenticated creates", regular, ActionCreate, nil, true},
		{"author updates own", author, ActionUpdate, resource, true},
		{"author deletes own", author, ActionDelete, resource, true},
		{"stranger cannot update", regular, ActionUpdate, resource, false},
		{"stranger cannot delete", regular, ActionDelete, resource, false},
		{"moderator updates any", moderator, ActionUpdate, resource, true},
		{"moderator deletes any", moderator, ActionDelete, resource, true},
		{"admin deletes any", admin, ActionDelete, resource, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Allows(tt.subject, tt.action, tt.resource))
		})
	}
}

func TestCatalogPolicy(t *testing.T) {
	p := Catalog{}

	tests := []struct {
		name    string
		subject *models.User
		action  Action
		want    bool
	}{
		{"anonymous reads", anonymous, ActionRead, true},
		{"anonymous cannot create", anonymous, ActionCreate, false},
		{"regular cannot create", regular, ActionCreate, false},
		{"moderator cannot create", moderator, ActionCreate, false},
		{"moderator cannot delete", moderator, ActionDelete, false},
		{"admin creates", admin, ActionCreate, true},
		{"admin deletes", admin, ActionDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Allows(tt.subject, tt.action, nil))
		})
	}
}

func TestUserAdminPolicy(t *testing.T) {
	p := UserAdmin{}

	assert.False(t, p.Allows(anonymous, ActionRead, nil))
	assert.False(t, p.Allows(regular, ActionRead, nil))
	assert.False(t, p.Allows(moderator, ActionUpdate, nil))
	assert.True(t, p.Allows(admin, ActionRead, nil))
	assert.True(t, p.Allows(admin, ActionDelete, nil))
}
