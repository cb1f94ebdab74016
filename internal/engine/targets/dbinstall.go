package targets

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/drub/internal/core/domain"
	"go.trai.ch/drub/internal/engine/resolver"
)

var _ resolver.Target = (*DBInstall)(nil)

// DBInstall provisions a site's database through drush site-install.
type DBInstall struct {
	env  *Env
	site string
}

// NewDBInstall creates the database install target for a site.
func NewDBInstall(env *Env, site string) *DBInstall {
	return &DBInstall{env: env, site: site}
}

func (t *DBInstall) ID() domain.TargetID {
	return domain.TID("db-install", t.site)
}

func (t *DBInstall) Dependencies() ([]resolver.Target, error) {
	return []resolver.Target{NewSiteInstall(t.env, t.site)}, nil
}

// AlreadyBuilt reports whether drush has written the site's settings.php.
func (t *DBInstall) AlreadyBuilt() bool {
	return t.env.Files.Exists(filepath.Join(t.env.siteDir(t.site), "settings.php"))
}

func (t *DBInstall) Updateable() bool { return true }

func (t *DBInstall) Build(ctx context.Context) error {
	site, err := t.env.Tree.Site(t.site)
	if err != nil {
		return err
	}
	cfg := t.env.Config

	dbURL := site.DBURL
	if cfg.DBPrefix != "" {
		// The prefix goes onto the database name, the last URL segment.
		i := strings.LastIndexByte(dbURL, '/') + 1
		dbURL = dbURL[:i] + cfg.DBPrefix + dbURL[i:]
	}

	args := []string{
		"si", "-y",
		"--sites-subdir=" + t.site,
		"--db-url=" + dbURL,
		"--root=" + t.env.documentRoot(),
		"--account-mail=" + site.AccountMail,
		"--site-name=" + site.SiteName,
		"--site-mail=" + site.SiteMail,
		site.Profile,
		`install_configure_form.update_status_module="array()"`,
	}
	if cfg.Debug {
		args = append(args, "--debug")
	}
	if cfg.Devel {
		args = append(args, "mo_devel_flag=TRUE")
	}

	return t.env.drush(ctx, args...)
}
