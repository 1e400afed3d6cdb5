package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_Clone(t *testing.T) {
	var nilUser *User
	assert.Nil(t, nilUser.Clone())

	u := &User{ID: "1", Email: "a@b.co", CreatedAt: time.Unix(0, 0).UTC()}
	c := u.Clone()
	c.Email = "changed@b.co"

	assert.Equal(t, "a@b.co", u.Email)
	assert.Equal(t, u.CreatedAt, c.CreatedAt)
}

func TestProfileUpdate_Apply(t *testing.T) {
	first := "Jane"
	phone := ""
	u := &User{ID: "1", FirstName: "John", LastName: "Doe", PhoneNumber: "+1"}

	ProfileUpdate{FirstName: &first, PhoneNumber: &phone}.Apply(u)

	assert.Equal(t, "Jane", u.FirstName)
	assert.Equal(t, "Doe", u.LastName)
	assert.Empty(t, u.PhoneNumber)

	assert.NotPanics(t, func() { ProfileUpdate{FirstName: &first}.Apply(nil) })
	assert.True(t, ProfileUpdate{}.IsEmpty())
	assert.False(t, ProfileUpdate{FirstName: &first}.IsEmpty())
}
