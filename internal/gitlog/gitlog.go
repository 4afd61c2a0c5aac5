// Package gitlog reads a project's commit history via go-git (no
// shelling out to the git binary) to compute per-file churn and to
// extract decisions from conventional-commit subjects.
package gitlog

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// recentWindow is the lookback used for recent_fraction in churn_score.
const recentWindow = 90 * 24 * time.Hour

// FileChurn is one file's commit count and churn score.
type FileChurn struct {
	Path        string
	CommitCount int
	ChurnScore  float64
}

// Decision is an extracted conventional-commit decision, ready for
// store.InsertDecision.
type Decision struct {
	CommitHash string
	Timestamp  time.Time
	Kind       string
	Subject    string
	Body       string
}

var decisionPattern = regexp.MustCompile(`(?i)^(feat|fix|refactor|perf|breaking change)(\([^)]+\))?(!)?:`)

// Analyze reads the full commit log of the repository at root (as of
// now) and returns per-file churn plus extracted decisions. If root is
// not a git repository, it returns a GitAbsent error the caller should
// downgrade to a no-op.
func Analyze(root string, now time.Time) ([]FileChurn, []Decision, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, nil, ctxerr.WrapPath(ctxerr.KindGitAbsent, "not a git repository", root, err)
	}

	commitIter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, nil, ctxerr.Wrap(ctxerr.KindIO, "read commit log", err)
	}

	counts := map[string]int{}
	recent := map[string]int{}
	var decisions []Decision

	err = commitIter.ForEach(func(c *object.Commit) error {
		stats, statErr := c.Stats()
		if statErr == nil {
			isRecent := now.Sub(c.Author.When) <= recentWindow
			for _, fs := range stats {
				counts[fs.Name]++
				if isRecent {
					recent[fs.Name]++
				}
			}
		}

		if d, ok := extractDecision(c); ok {
			decisions = append(decisions, d)
		}
		return nil
	})
	if err != nil {
		return nil, nil, ctxerr.Wrap(ctxerr.KindIO, "walk commit log", err)
	}

	churn := make([]FileChurn, 0, len(counts))
	for path, count := range counts {
		recentFraction := 0.0
		if count > 0 {
			recentFraction = float64(recent[path]) / float64(count)
		}
		score := math.Log2(1+float64(count)) * (1 + recentFraction)
		churn = append(churn, FileChurn{Path: path, CommitCount: count, ChurnScore: score})
	}
	return churn, decisions, nil
}

// extractDecision applies spec.md §4.5's conventional-commit pattern.
func extractDecision(c *object.Commit) (Decision, bool) {
	lines := strings.SplitN(c.Message, "\n", 2)
	subject := strings.TrimSpace(lines[0])
	body := ""
	if len(lines) > 1 {
		body = firstParagraph(lines[1])
	}

	m := decisionPattern.FindStringSubmatch(subject)
	if m == nil {
		return Decision{}, false
	}

	kind := strings.ToLower(m[1])
	if kind == "breaking change" {
		kind = "breaking"
	}
	bang := m[3] == "!"
	if bang || strings.Contains(strings.ToUpper(body), "BREAKING CHANGE:") {
		kind = "breaking"
	}

	return Decision{
		CommitHash: c.Hash.String(),
		Timestamp:  c.Author.When,
		Kind:       kind,
		Subject:    subject,
		Body:       body,
	}, true
}

func firstParagraph(body string) string {
	body = strings.TrimLeft(body, "\n")
	if i := strings.Index(body, "\n\n"); i >= 0 {
		body = body[:i]
	}
	return strings.TrimSpace(body)
}
