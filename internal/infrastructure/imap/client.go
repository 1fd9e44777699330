package imap

import (
	"context"
	"fmt"

	"github.com/emersion/go-imap"
	imapclient "github.com/emersion/go-imap/client"

	sharedConfig "fitout/internal/shared/config"
	"fitout/internal/shared/logger"
)

// Client fetches recent mailbox messages over IMAP. Each fetch opens a fresh
// connection so a dead connection never wedges the poll loop.
type Client struct {
	cfg *sharedConfig.IMAPConfig
	log logger.Interface
}

func NewClient(cfg *sharedConfig.IMAPConfig, log logger.Interface) *Client {
	return &Client{
		cfg: cfg,
		log: log.Named("imap"),
	}
}

// FetchRecent returns the newest messages in the configured folder, at most
// window of them, parsed into InboundEmail values. Messages that fail to
// parse are logged and skipped.
func (c *Client) FetchRecent(ctx context.Context, window int) ([]*InboundEmail, error) {
	conn, err := c.dial()
	if err != nil {
		return nil, err
	}
	defer conn.Logout()

	if err := conn.Login(c.cfg.Username, c.cfg.Password); err != nil {
		return nil, fmt.Errorf("imap login failed: %w", err)
	}

	mbox, err := conn.Select(c.cfg.Folder, true)
	if err != nil {
		return nil, fmt.Errorf("failed to select folder %s: %w", c.cfg.Folder, err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	from := uint32(1)
	if mbox.Messages > uint32(window) {
		from = mbox.Messages - uint32(window) + 1
	}
	seqset := new(imap.SeqSet)
	seqset.AddRange(from, mbox.Messages)

	// Peek keeps the \Seen flag untouched; deduplication happens against the
	// conversation log, not mailbox state.
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem()}

	messages := make(chan *imap.Message, window)
	done := make(chan error, 1)
	go func() {
		done <- conn.Fetch(seqset, items, messages)
	}()

	var result []*InboundEmail
	for msg := range messages {
		select {
		case <-ctx.Done():
			<-done
			return result, ctx.Err()
		default:
		}

		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		inbound, parseErr := ParseInbound(body)
		if parseErr != nil {
			c.log.Warnw("failed to parse inbound message", "seq", msg.SeqNum, "error", parseErr)
			continue
		}
		result = append(result, inbound)
	}

	if err := <-done; err != nil {
		return result, fmt.Errorf("imap fetch failed: %w", err)
	}
	return result, nil
}

func (c *Client) dial() (*imapclient.Client, error) {
	addr := c.cfg.GetAddr()
	if c.cfg.UseTLS {
		conn, err := imapclient.DialTLS(addr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
		}
		return conn, nil
	}
	conn, err := imapclient.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return conn, nil
}
