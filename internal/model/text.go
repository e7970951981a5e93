package model

import (
	"errors"
	"fmt"
)

// ErrUnknownName is returned when decoding a name no enum value carries.
var ErrUnknownName = errors.New("unknown name")

// parseName returns the value among values whose String form is text.
func parseName[T interface {
	~int
	String() string
}](text []byte, values ...T) (T, error) {
	for _, value := range values {
		if value.String() == string(text) {
			return value, nil
		}
	}

	var zero T

	return zero, fmt.Errorf("%w: %q", ErrUnknownName, text)
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *ArtifactKind) UnmarshalText(text []byte) error {
	kind, err := parseName(text,
		KindContract, KindImplementation, KindEntity, KindUseCase,
		KindController, KindService, KindUnitTest, KindE2ETest, KindModule,
	)
	if err != nil {
		return err
	}

	*k = kind

	return nil
}

// UnmarshalText decodes a role written by MarshalText.
func (r *Role) UnmarshalText(text []byte) error {
	role, err := parseName(text, RoleNone, RoleUseCase, RoleController, RoleService)
	if err != nil {
		return err
	}

	*r = role

	return nil
}

// UnmarshalText decodes a confidence written by MarshalText.
func (c *Confidence) UnmarshalText(text []byte) error {
	confidence, err := parseName(text, ConfidenceNone, ConfidenceImport, ConfidenceInferred, ConfidenceExact)
	if err != nil {
		return err
	}

	*c = confidence

	return nil
}

// UnmarshalText decodes a grade written by MarshalText.
func (g *CoverageGrade) UnmarshalText(text []byte) error {
	grade, err := parseName(text, GradeNone, GradeLow, GradeModerate, GradeGood, GradeComplete)
	if err != nil {
		return err
	}

	*g = grade

	return nil
}
