// Copyright (c) 2024 The illium developers
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/project-illium/sigil/crypto/sigil"
	"github.com/project-illium/sigil/repo"
	"github.com/project-illium/sigil/repo/datastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	stdout = &buf
	defer func() { stdout = os.Stdout }()

	var opts options
	_, err := newParser(&opts).ParseArgs(args)
	return buf.String(), err
}

func TestDigestCommand(t *testing.T) {
	out, err := run(t, "digest", "abc")
	require.NoError(t, err)
	assert.Equal(t, sigil.SumHex([]byte("abc"))+"  abc\n", out)

	out, err = run(t, "digest", "--hex", "616263")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, sigil.SumHex([]byte("abc"))))

	out, err = run(t, "digest", "--double", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, sigil.DoubleHash(nil).String()))

	p := sigil.Params{Rounds: 1}
	out, err = run(t, "--rounds", "1", "digest", "abc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, p.Sum256([]byte("abc")).String()))

	_, err = run(t, "--rounds", "30", "digest", "abc")
	assert.Error(t, err)

	_, err = run(t, "digest")
	assert.Error(t, err)
}

func TestDigestCommandFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "data")
	data := bytes.Repeat([]byte("sigil"), 1000)
	require.NoError(t, os.WriteFile(name, data, 0600))

	out, err := run(t, "--json", "digest", "--file", name)
	require.NoError(t, err)

	var resp struct {
		Digests []struct {
			Input  string `json:"input"`
			Digest string `json:"digest"`
		} `json:"digests"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Digests, 1)
	assert.Equal(t, name, resp.Digests[0].Input)
	assert.Equal(t, sigil.SumHex(data), resp.Digests[0].Digest)

	out, err = run(t, "--noschedulemul", "digest", "--file", name)
	require.NoError(t, err)
	p := sigil.Params{NoScheduleMul: true}
	assert.True(t, strings.HasPrefix(out, p.Sum256(data).String()))
}

func TestVerifyCommand(t *testing.T) {
	_, err := run(t, "verify", "--digest", sigil.SumHex([]byte("abc")), "abc")
	assert.NoError(t, err)

	_, err = run(t, "verify", "--digest", sigil.SumHex([]byte("abc")), "abd")
	assert.ErrorIs(t, err, errDigestMismatch)

	_, err = run(t, "verify", "--digest", "00", "abc")
	assert.ErrorIs(t, err, sigil.ErrDigestStrSize)
}

func TestMerkleCommand(t *testing.T) {
	leaves := []sigil.Digest{
		sigil.Sum256([]byte("a")),
		sigil.Sum256([]byte("b")),
		sigil.Sum256([]byte("c")),
	}
	root := sigil.MerkleRoot(leaves)

	out, err := run(t, "merkle", "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, root.String()+"\n", out)

	out, err = run(t, "--json", "merkle", "--digests", leaves[0].String(), leaves[1].String(), leaves[2].String())
	require.NoError(t, err)
	var resp struct {
		Root   string `json:"root"`
		Leaves int    `json:"leaves"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, root.String(), resp.Root)
	assert.Equal(t, 3, resp.Leaves)

	_, err = run(t, "merkle")
	assert.Error(t, err)
}

func TestCommitCommand(t *testing.T) {
	out, err := run(t, "commit", "--value", "hello", "--nonce", "00ff")
	require.NoError(t, err)

	var resp struct {
		Commitment string `json:"commitment"`
		Nonce      string `json:"nonce"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "00ff", resp.Nonce)
	assert.Equal(t, sigil.Commitment([]byte("hello"), []byte{0x00, 0xff}).String(), resp.Commitment)

	out, err = run(t, "commit", "--value", "hello")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Nonce, 64)

	out, err = run(t, "--rounds", "1", "--noschedulemul", "commit", "--value", "hello", "--nonce", "00ff")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	weak := sigil.Params{Rounds: 1, NoScheduleMul: true}
	assert.Equal(t, weak.Commitment([]byte("hello"), []byte{0x00, 0xff}).String(), resp.Commitment)
	assert.NotEqual(t, sigil.Commitment([]byte("hello"), []byte{0x00, 0xff}).String(), resp.Commitment)
}

func TestBenchCommand(t *testing.T) {
	out, err := run(t, "--json", "bench", "--bytes", "65536")
	require.NoError(t, err)

	var resp struct {
		Results []struct {
			PayloadBytes int `json:"payloadBytes"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Results, 4)
}

func TestAuditCommand(t *testing.T) {
	out, err := run(t, "audit", "--nobenchmark")
	require.NoError(t, err)
	assert.Contains(t, out, "CERTIFIED: 9/9 tests passed")

	_, err = run(t, "--noschedulemul", "audit", "--nobenchmark")
	assert.ErrorIs(t, err, errNotCertified)
}

func TestHistoryCommand(t *testing.T) {
	dir := t.TempDir()
	ds, err := datastore.NewSigilDatastore(filepath.Join(dir, repo.ArchiveDirName))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, repo.PutScorecard(ctx, ds, time.Unix(100, 0), []byte(`{"target":"a","seed":1,"passCount":9,"total":9,"certified":true}`)))
	require.NoError(t, repo.PutScorecard(ctx, ds, time.Unix(200, 0), []byte(`{"target":"b","seed":2,"passCount":5,"total":9,"certified":false}`)))
	require.NoError(t, ds.Close())

	out, err := run(t, "--json", "--datadir", dir, "history")
	require.NoError(t, err)
	var resp struct {
		Audits []struct {
			Target    string `json:"target"`
			Seed      uint64 `json:"seed"`
			Certified bool   `json:"certified"`
		} `json:"audits"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Audits, 2)
	assert.Equal(t, "a", resp.Audits[0].Target)
	assert.True(t, resp.Audits[0].Certified)
	assert.Equal(t, uint64(2), resp.Audits[1].Seed)

	out, err = run(t, "--datadir", dir, "history", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "5/9")
	assert.NotContains(t, out, "9/9")
}
