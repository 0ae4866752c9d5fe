package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-initiative/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationErrorIsOrdered() {
	ve := errors.NewValidationError()
	ve.AddFieldError("quantity", "must be at least 1")
	ve.AddFieldError("entry_id", "is required")

	s.True(ve.HasErrors())
	s.Equal("validation failed: entry_id: is required; quantity: must be at least 1", ve.Error())

	err := ve.ToError()
	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", "  ", vb)
	errors.ValidateMin("quantity", 0, 1, vb)
	errors.ValidateEnum("kind", "monster", []string{"player", "npc"}, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "name: is required")
	s.Contains(err.Error(), "quantity: must be at least 1")
	s.Contains(err.Error(), "kind: must be one of: player, npc")
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", "Goblin", vb)
	errors.ValidateMin("quantity", 3, 1, vb)
	errors.ValidateEnum("kind", "npc", []string{"player", "npc"}, vb)
	s.NoError(vb.Build())
}
