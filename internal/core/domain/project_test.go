package domain_test

import (
	"testing"

	"go.trai.ch/drub/internal/core/domain"
)

func TestResource_IsSCM(t *testing.T) {
	tests := []struct {
		name string
		res  domain.Resource
		want bool
	}{
		{name: "typed git", res: domain.Resource{Type: "git"}, want: true},
		{name: "branch", res: domain.Resource{Branch: "7.x"}, want: true},
		{name: "revision", res: domain.Resource{Revision: "abc123"}, want: true},
		{name: "tarball", res: domain.Resource{URL: "https://example.org/a.tar.gz"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.IsSCM(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResource_IsPatch(t *testing.T) {
	tests := []struct {
		name string
		res  domain.Resource
		want bool
	}{
		{name: "patch suffix", res: domain.Resource{URL: "https://example.org/fix.patch"}, want: true},
		{name: "diff suffix", res: domain.Resource{URL: "https://example.org/fix.diff"}, want: true},
		{name: "typed patch", res: domain.Resource{URL: "fix.txt", Type: "patch"}, want: true},
		{name: "tarball", res: domain.Resource{URL: "https://example.org/a.tar.gz"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.IsPatch(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResource_ShallowClone(t *testing.T) {
	deep := false
	if !(domain.Resource{}).ShallowClone() {
		t.Error("expected default to clone shallow")
	}
	if (domain.Resource{Shallow: &deep}).ShallowClone() {
		t.Error("expected shallow=false to clone deep")
	}
}

func TestResource_Scheme(t *testing.T) {
	if got := (domain.Resource{URL: "https://example.org/a.tar.gz"}).Scheme(); got != "https" {
		t.Errorf("got %q", got)
	}
	if got := (domain.Resource{URL: "patches/local.patch"}).Scheme(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestSplitResourceURL(t *testing.T) {
	url, hash := domain.SplitResourceURL("https://example.org/a.tar.gz#99fa1b0d")
	if url != "https://example.org/a.tar.gz" || hash != "99fa1b0d" {
		t.Errorf("got %q, %q", url, hash)
	}

	url, hash = domain.SplitResourceURL("https://example.org/a.tar.gz")
	if url != "https://example.org/a.tar.gz" || hash != "" {
		t.Errorf("got %q, %q", url, hash)
	}
}

func TestProject_IsDrupalOrg(t *testing.T) {
	p := &domain.Project{Dirname: "views-7.x-3.18", Type: "drupal.org", Name: "views"}
	if !p.IsDrupalOrg() {
		t.Error("expected drupal.org project")
	}
	if (&domain.Project{Dirname: "views-7.x-3.18", Name: "views"}).IsDrupalOrg() {
		t.Error("expected plain project without type")
	}
	if (&domain.Project{Dirname: "custom", Type: "drupal.org"}).IsDrupalOrg() {
		t.Error("expected unparsed dirname to stay plain")
	}
}

func TestTargetID_String(t *testing.T) {
	if got := domain.TID("core-build", "").String(); got != "core-build" {
		t.Errorf("got %q", got)
	}
	if got := domain.TID("build-project", "views-7.x-3.18").String(); got != "build-project(views-7.x-3.18)" {
		t.Errorf("got %q", got)
	}
}
