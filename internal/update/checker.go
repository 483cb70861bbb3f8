// Package update prints a one-line notice when a newer twig release is
// available. Failures are silent: the notice is best effort and must never
// get in the way of a checkout.
package update

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/coreos/go-semver/semver"
	"github.com/crazywolf132/fstr"
	"github.com/sirupsen/logrus"
)

// GitHub is asked at most once per interval; the stamp file remembers the
// last check.
const checkInterval = 24 * time.Hour

// Swapped in tests.
var (
	releaseURL = "https://api.github.com/repos/crazywolf132/twig/releases/latest"
	stampPath  = func() string { return filepath.Join(os.TempDir(), "twig_update_check") }
	now        = time.Now
)

type githubRelease struct {
	TagName string `json:"tag_name"`
}

// Notice returns a hint when a release newer than current exists, or "".
// Dev builds never trigger a check.
func Notice(current string) string {
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return ""
	}
	if !shouldCheck() {
		return ""
	}

	latest, err := latestRelease()
	if err != nil {
		logrus.WithError(err).Debug("release check failed")
		return ""
	}
	markChecked()

	lv, err := semver.NewVersion(latest)
	if err != nil {
		return ""
	}
	if cur.LessThan(*lv) {
		return fstr.F("twig {} is available (installed {}): go install github.com/crazywolf132/twig@latest", latest, current)
	}
	return ""
}

func shouldCheck() bool {
	data, err := os.ReadFile(stampPath())
	if err != nil {
		return true
	}
	last, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return true
	}
	return now().Sub(time.Unix(last, 0)) >= checkInterval
}

func markChecked() {
	stamp := strconv.FormatInt(now().Unix(), 10)
	if err := os.WriteFile(stampPath(), []byte(stamp), 0o644); err != nil {
		logrus.WithError(err).Debug("failed to write update stamp")
	}
}

func latestRelease() (string, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	req, err := http.NewRequest(http.MethodGet, releaseURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "twig-cli")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}
