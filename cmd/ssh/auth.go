package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/charmbracelet/ssh"
	gossh "golang.org/x/crypto/ssh"
)

// authorizedKeys is an allowlist parsed from an OpenSSH authorized_keys file.
type authorizedKeys struct {
	keys []ssh.PublicKey
}

func loadAuthorizedKeys(path string) (*authorizedKeys, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read authorized keys: %w", err)
	}
	ak := &authorizedKeys{}
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		key, _, _, _, err := gossh.ParseAuthorizedKey(text)
		if err != nil {
			return nil, fmt.Errorf("parse authorized keys line %d: %w", line, err)
		}
		ak.keys = append(ak.keys, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan authorized keys: %w", err)
	}
	return ak, nil
}

func (a *authorizedKeys) Allows(key ssh.PublicKey) bool {
	if a == nil {
		return false
	}
	for _, k := range a.keys {
		if ssh.KeysEqual(k, key) {
			return true
		}
	}
	return false
}

func (a *authorizedKeys) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}
