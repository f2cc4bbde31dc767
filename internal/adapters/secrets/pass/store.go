package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/sc-console-cli/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

// Stderr fragment pass emits when an entry does not exist; used to translate
// a missing entry into ports.ErrNotStored instead of a generic exec failure.
const missingEntryMarker = "is not in the password store"

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps credentials in the standard unix password store. Preferred
// over the file store when the pass binary is installed. Entry names are
// path-like inside the store, so keys are validated before they ever reach
// the binary: a key must stay relative to the store root and must not look
// like a command-line flag.
type Store struct {
	run runFunc
}

var _ ports.CredentialStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPassCommand}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry, err := entryName(key)
	if err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, value+"\n", "insert", "-m", "-f", entry)
	if err != nil {
		return formatError("put", entry, err, stderr)
	}

	return nil
}

// Get reads the first line of the entry. Tokens are single-line values;
// anything after the first line of a pass entry is metadata and ignored.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entry, err := entryName(key)
	if err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", entry)
	if err != nil {
		if strings.Contains(stderr, missingEntryMarker) {
			return "", fmt.Errorf("credential %q: %w", entry, ports.ErrNotStored)
		}
		return "", formatError("get", entry, err, stderr)
	}

	line, _, _ := strings.Cut(stdout, "\n")

	return strings.TrimSuffix(line, "\r"), nil
}

// Delete removes the entry. Deleting an entry that does not exist is not an
// error, matching the file store.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry, err := entryName(key)
	if err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "-f", entry)
	if err != nil {
		if strings.Contains(stderr, missingEntryMarker) {
			return nil
		}
		return formatError("delete", entry, err, stderr)
	}

	return nil
}

// entryName validates a credential key as a store-relative pass entry.
// Absolute paths, traversal segments, and flag-like names would either
// escape the store or be swallowed by pass as options.
func entryName(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("credential key is empty")
	}
	if strings.HasPrefix(trimmed, "-") {
		return "", fmt.Errorf("invalid credential key %q", key)
	}
	if strings.HasPrefix(trimmed, "/") {
		return "", fmt.Errorf("invalid credential key %q", key)
	}

	for _, segment := range strings.Split(trimmed, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", fmt.Errorf("invalid credential key %q", key)
		}
	}

	return trimmed, nil
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(op string, entry string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, entry, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, entry, err, stderr)
}
