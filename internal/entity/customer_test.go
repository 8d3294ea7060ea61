package entity_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/invoice/internal/entity"
)

func TestNewCustomer(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("trims input", func(t *testing.T) {
		t.Parallel()

		c, err := entity.NewCustomer("  Acme Corp ", " billing@acme.io ", now)
		require.NoError(t, err)
		require.False(t, c.ID.IsNil())
		require.Equal(t, "Acme Corp", c.Name)
		require.Equal(t, "billing@acme.io", c.Email)
		require.Equal(t, now, c.CreatedAt)
	})

	for _, tt := range []struct {
		name  string
		cName string
		email string
		want  map[string][]string
	}{
		{
			name:  "blank fields",
			cName: "   ",
			email: "",
			want: map[string][]string{
				"name":  {"This field may not be blank."},
				"email": {"This field may not be blank."},
			},
		},
		{
			name:  "bad email",
			cName: "Acme",
			email: "acme.io",
			want:  map[string][]string{"email": {"Enter a valid email address."}},
		},
		{
			name:  "long name",
			cName: strings.Repeat("a", entity.CustomerNameMaxLen+1),
			email: "a@acme.io",
			want:  map[string][]string{"name": {"Ensure this field has no more than 255 characters."}},
		},
		{
			name:  "long email",
			cName: "Acme",
			email: strings.Repeat("a", entity.EmailMaxLen) + "@acme.io",
			want:  map[string][]string{"email": {"Ensure this field has no more than 254 characters."}},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := entity.NewCustomer(tt.cName, tt.email, now)
			require.ErrorIs(t, err, entity.ErrInvalidArgument)

			var verr *entity.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.want, verr.ByField())
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	verr := &entity.ValidationError{}
	require.NoError(t, verr.Err())

	verr.Merge("items[0].", nil)
	verr.Merge("items[0].", entity.NewValidationError("quantity", "too small"))
	verr.Add("due_date", "bad").Add("due_date", "worse")

	err := verr.Err()
	require.Error(t, err)
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
	require.NotErrorIs(t, err, entity.ErrNotFound)
	require.Equal(t, "validation failed: items[0].quantity: too small; due_date: bad; due_date: worse", err.Error())
	require.Equal(t, map[string][]string{
		"items[0].quantity": {"too small"},
		"due_date":          {"bad", "worse"},
	}, verr.ByField())
}
