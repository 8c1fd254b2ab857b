package util

import "testing"

func TestPathFilter(t *testing.T) {
	t.Parallel()

	f, err := NewPathFilter(
		[]string{".build", "*Tests", "Vendor/**"},
		[]string{"*+Mock.swift", "Package.swift", "Generated/*.swift"},
	)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	dirs := []struct {
		rel  string
		skip bool
	}{
		{"", false},
		{".build", true},
		{"App/.build", true},
		{"AppTests", true},
		{"App/Features/FeatureTests", true},
		{"App/Tests/Unit", false},
		{"Vendor/Lib", true},
		{"App", false},
	}
	for _, tc := range dirs {
		if got := f.SkipDir(tc.rel); got != tc.skip {
			t.Errorf("SkipDir(%q) = %v, want %v", tc.rel, got, tc.skip)
		}
	}

	files := []struct {
		rel  string
		skip bool
	}{
		{"Package.swift", true},
		{"App/Model+Mock.swift", true},
		{"Generated/Assets.swift", true},
		{"App/Generated/Assets.swift", false},
		{"App/Model.swift", false},
	}
	for _, tc := range files {
		if got := f.SkipFile(tc.rel); got != tc.skip {
			t.Errorf("SkipFile(%q) = %v, want %v", tc.rel, got, tc.skip)
		}
	}
}

func TestPathFilter_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := NewPathFilter([]string{"{a,b"}, nil); err == nil {
		t.Fatal("expected error for unterminated pattern")
	}
	if _, err := NewPathFilter(nil, []string{"[A-Z"}); err == nil {
		t.Fatal("expected error for unterminated class")
	}
}

func TestValidatePattern(t *testing.T) {
	t.Parallel()

	valid := []string{"*Tests", "{Tests,Mocks}", "Vendor/**", "[A-Z]*.swift", `\{literal`}
	for _, p := range valid {
		if err := ValidatePattern(p); err != nil {
			t.Errorf("ValidatePattern(%q) = %v, want nil", p, err)
		}
	}
	invalid := []string{"{Tests,Mocks", "[A-Z", "Tests}", "a]", `trailing\`}
	for _, p := range invalid {
		if err := ValidatePattern(p); err == nil {
			t.Errorf("ValidatePattern(%q) = nil, want error", p)
		}
	}
}

func TestPathFilter_Nil(t *testing.T) {
	t.Parallel()

	var f *PathFilter
	if f.SkipDir("x") || f.SkipFile("x.swift") {
		t.Fatal("nil filter must not skip anything")
	}
}
