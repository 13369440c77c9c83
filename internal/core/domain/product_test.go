package domain_test

import (
	"testing"

	"github.com/niksmo/ecoscan/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	assert.Equal(t, domain.GradeA, domain.ParseGrade("A"))
	assert.Equal(t, domain.GradeE, domain.ParseGrade(" e "))
	assert.Equal(t, domain.GradeUnknown, domain.ParseGrade("unknown"))
	assert.Equal(t, domain.GradeUnknown, domain.ParseGrade(""))

	assert.True(t, domain.GradeA.Better(domain.GradeB))
	assert.False(t, domain.GradeB.Better(domain.GradeB))
	assert.False(t, domain.GradeA.Better(domain.GradeUnknown))
	assert.False(t, domain.GradeUnknown.Better(domain.GradeE))
}

func TestValidGTIN(t *testing.T) {
	assert.True(t, domain.ValidGTIN("12345678"))
	assert.True(t, domain.ValidGTIN("036000291452"))
	assert.True(t, domain.ValidGTIN("5449000000996"))
	assert.True(t, domain.ValidGTIN("15449000000994"))
	assert.False(t, domain.ValidGTIN("1234567"))
	assert.False(t, domain.ValidGTIN("54490000009a6"))
	assert.False(t, domain.ValidGTIN(""))
}
