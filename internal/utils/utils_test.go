package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"rasdfs@gmail.com",
		"rasdfs@piosdf.com",
		"asdfj.jh@pio.sdf.com",
		"admin@testcompany.com",
	}
	invalid := []string{
		"asdjfkjsdhf",
		"@asdfjaskh",
		"asdfasdf@",
		"Admin <admin@testcompany.com>",
		"nodot@localhost",
	}

	for _, v := range valid {
		if !ValidateEmail(v) {
			t.Errorf("Email should be valid: %s", v)
		}
	}

	for _, v := range invalid {
		if ValidateEmail(v) {
			t.Errorf("Email should be invalid: %s", v)
		}
	}
}

func TestValidateUUID(t *testing.T) {
	require := require.New(t)
	require.True(ValidateUUID("7b0c7f5e-2b1d-4d8e-9b57-4f1c2a9d3e10"))
	require.False(ValidateUUID(""))
	require.False(ValidateUUID("not-a-uuid"))
	require.False(ValidateUUID("7b0c7f5e2b1d4d8e9b574f1c2a9d3e10"))
	require.False(ValidateUUID("{7b0c7f5e-2b1d-4d8e-9b57-4f1c2a9d3e10}"))
}

func TestValidateSlug(t *testing.T) {
	require := require.New(t)
	require.True(ValidateSlug("test-company"))
	require.True(ValidateSlug("acme42"))
	require.False(ValidateSlug("Test-Company"))
	require.False(ValidateSlug("-acme"))
	require.False(ValidateSlug("acme--corp"))
	require.False(ValidateSlug(""))
}

func TestSplitIDs(t *testing.T) {
	type Entry struct {
		in     string
		expect []string
	}
	entries := []Entry{
		{in: "", expect: []string{}},
		{in: "a", expect: []string{"a"}},
		{in: "a,b,c", expect: []string{"a", "b", "c"}},
		{in: " a , b ", expect: []string{"a", "b"}},
		{in: "a,,b,", expect: []string{"a", "b"}},
	}
	for _, e := range entries {
		require.Equal(t, e.expect, SplitIDs(e.in), "input %q", e.in)
	}
}

func TestEscapeLike(t *testing.T) {
	require := require.New(t)
	require.Equal("dark mode", EscapeLike("dark mode"))
	require.Equal(`100\%`, EscapeLike("100%"))
	require.Equal(`snake\_case`, EscapeLike("snake_case"))
	require.Equal(`C:\\tmp`, EscapeLike(`C:\tmp`))
}
