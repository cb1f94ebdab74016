package makegen_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/makegen"
)

func TestWrite(t *testing.T) {
	tree := &domain.Tree{
		Core: domain.CoreConfig{Project: "drupal-7.59"},
		Projects: map[string]*domain.Project{
			"drupal-7.59": {
				Dirname: "drupal-7.59",
				Pipeline: []domain.Resource{
					{URL: "https://ftp.drupal.org/files/projects/drupal-7.59.tar.gz"},
				},
			},
			"ctools-7.x-1.14": {
				Dirname: "ctools-7.x-1.14",
				Type:    "drupal.org",
				Name:    "ctools",
				Core:    "7.x",
				Version: "1.14",
				Pipeline: []domain.Resource{
					{URL: "https://ftp.drupal.org/files/projects/ctools-7.x-1.14.tar.gz"},
				},
			},
			"views-7.x-3.18": {
				Dirname: "views-7.x-3.18",
				Type:    "drupal.org",
				Name:    "views",
				Core:    "7.x",
				Version: "3.18",
				Pipeline: []domain.Resource{
					{URL: "https://ftp.drupal.org/files/projects/views-7.x-3.18.tar.gz"},
					{
						URL:     "https://www.drupal.org/files/issues/views-exposed-sorts-3.patch",
						Purpose: "Fix exposed sorts",
						Link:    "https://www.drupal.org/node/1240928",
					},
				},
			},
			"intranet-profile": {
				Dirname: "intranet-profile",
				Pipeline: []domain.Resource{
					{URL: "https://git.example.org/intranet-profile.git", Type: "git", Branch: "7.x"},
					{URL: "files/intranet-logo.png", Purpose: "Branding"},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, makegen.Write(&buf, tree))

	g := goldie.New(t)
	g.Assert(t, "makefile", buf.Bytes())
}

func TestWrite_NoCoreLineForForeignCore(t *testing.T) {
	tree := &domain.Tree{
		Core:     domain.CoreConfig{Project: "pressflow-6.28"},
		Projects: map[string]*domain.Project{},
	}

	var buf bytes.Buffer
	require.NoError(t, makegen.Write(&buf, tree))
	require.Equal(t, "api = 2\n", buf.String())
}

func TestWrite_SkipsProjectWithoutPipeline(t *testing.T) {
	tree := &domain.Tree{
		Core: domain.CoreConfig{Project: "drupal-7.59"},
		Projects: map[string]*domain.Project{
			"placeholder": {Dirname: "placeholder"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, makegen.Write(&buf, tree))
	require.Equal(t, "api = 2\ncore = 7.x\n", buf.String())
}
