package imap

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"fitout/internal/domain/issue"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/token"
)

// Subject/body fallback patterns, most specific first. They only apply when
// the correlation headers were stripped by the vendor's mail system.
var (
	subjectTagPattern = regexp.MustCompile(`\[Issue #(iss_[A-Za-z0-9]+)\]`)
	bareIssuePattern  = regexp.MustCompile(`Issue #(iss_[A-Za-z0-9]+)`)
	threadSlugPattern = regexp.MustCompile(`issue-([A-Za-z0-9][A-Za-z0-9-]{9,})`)
	shortIDPattern    = regexp.MustCompile(`(iss_[A-Za-z0-9]{4,})`)
)

// Matcher resolves an inbound email to the issue conversation it belongs to.
type Matcher struct {
	issues issue.IssueRepository
	signer *token.Signer
	log    logger.Interface
}

func NewMatcher(issues issue.IssueRepository, signer *token.Signer, log logger.Interface) *Matcher {
	return &Matcher{
		issues: issues,
		signer: signer,
		log:    log.Named("imap.matcher"),
	}
}

// Match returns the issue an inbound email belongs to, or nil when nothing
// correlates. The signed token header is authoritative; the thread header
// and subject/body patterns are fallbacks in that order.
func (m *Matcher) Match(ctx context.Context, mail *InboundEmail) (*issue.Issue, error) {
	if mail.IssueToken != "" {
		sid, err := m.signer.Verify(mail.IssueToken)
		if err != nil {
			m.log.Warnw("inbound message carries an invalid correlation token",
				"from", mail.FromAddress, "error", err)
		} else {
			iss, lookupErr := m.lookupSID(ctx, sid)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if iss != nil {
				return iss, nil
			}
		}
	}

	if slug := strings.TrimPrefix(mail.ThreadSlug, "issue-"); slug != "" && slug != mail.ThreadSlug {
		iss, err := m.lookupThreadToken(ctx, slug)
		if err != nil {
			return nil, err
		}
		if iss != nil {
			return iss, nil
		}
	}

	haystack := mail.Subject + "\n" + mail.Body

	for _, pattern := range []*regexp.Regexp{subjectTagPattern, bareIssuePattern} {
		if match := pattern.FindStringSubmatch(haystack); match != nil {
			iss, err := m.lookupSID(ctx, match[1])
			if err != nil {
				return nil, err
			}
			if iss != nil {
				return iss, nil
			}
		}
	}

	if match := threadSlugPattern.FindStringSubmatch(haystack); match != nil {
		iss, err := m.lookupThreadToken(ctx, match[1])
		if err != nil {
			return nil, err
		}
		if iss != nil {
			return iss, nil
		}
	}

	if match := shortIDPattern.FindStringSubmatch(haystack); match != nil {
		iss, err := m.lookupSID(ctx, match[1])
		if err != nil {
			return nil, err
		}
		if iss != nil {
			return iss, nil
		}
	}

	return nil, nil
}

func (m *Matcher) lookupSID(ctx context.Context, sid string) (*issue.Issue, error) {
	iss, err := m.issues.GetBySID(ctx, sid)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("issue lookup by sid failed: %w", err)
	}
	return iss, nil
}

func (m *Matcher) lookupThreadToken(ctx context.Context, threadToken string) (*issue.Issue, error) {
	iss, err := m.issues.GetByThreadToken(ctx, threadToken)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("issue lookup by thread token failed: %w", err)
	}
	return iss, nil
}
