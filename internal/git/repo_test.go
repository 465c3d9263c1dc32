package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixtureRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	when time.Time
	n    int
}

func newFixtureRepo(t *testing.T) *fixtureRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &fixtureRepo{
		t:    t,
		dir:  dir,
		repo: repo,
		wt:   wt,
		when: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixtureRepo) commit(message string, parents ...plumbing.Hash) plumbing.Hash {
	f.t.Helper()
	f.n++
	f.when = f.when.Add(time.Minute)

	name := filepath.Join(f.dir, "file.txt")
	require.NoError(f.t, os.WriteFile(name, []byte(strings.Repeat("x", f.n)), 0644))
	_, err := f.wt.Add("file.txt")
	require.NoError(f.t, err)

	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: f.when}
	hash, err := f.wt.Commit(message, &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		Parents:           parents,
		AllowEmptyCommits: true,
	})
	require.NoError(f.t, err)
	return hash
}

func (f *fixtureRepo) tag(name string, hash plumbing.Hash) {
	f.t.Helper()
	_, err := f.repo.CreateTag(name, hash, nil)
	require.NoError(f.t, err)
}

// buildReleaseRepo creates:
//
//	base (v1) <- [FACT-1] fix thing <- unrelated tweak <- merge
func buildReleaseRepo(t *testing.T) (*fixtureRepo, map[string]plumbing.Hash) {
	f := newFixtureRepo(t)
	hashes := map[string]plumbing.Hash{}
	hashes["base"] = f.commit("initial import")
	f.tag("v1", hashes["base"])
	hashes["fix"] = f.commit("[FACT-1] fix thing")
	hashes["tweak"] = f.commit("unrelated tweak\n\nlonger body that is ignored")
	hashes["merge"] = f.commit("Merge branch 'feature'", hashes["tweak"], hashes["fix"])
	return f, hashes
}

func TestRepoLog(t *testing.T) {
	f, hashes := buildReleaseRepo(t)

	src := &RepoLog{Logger: zap.NewNop()}
	out, err := src.Log(context.Background(), f.dir, "v1", "HEAD")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, hashes["tweak"].String()[:7]+" unrelated tweak", lines[0])
	assert.Equal(t, hashes["fix"].String()[:7]+" [FACT-1] fix thing", lines[1])
}

func TestRepoLogFromSubdirectory(t *testing.T) {
	f, _ := buildReleaseRepo(t)
	sub := filepath.Join(f.dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))

	out, err := (&RepoLog{}).Log(context.Background(), sub, "v1", "HEAD")
	require.NoError(t, err)
	assert.Contains(t, out, "[FACT-1] fix thing")
}

func TestRepoLogUnknownRevision(t *testing.T) {
	f, _ := buildReleaseRepo(t)

	_, err := (&RepoLog{}).Log(context.Background(), f.dir, "v9", "HEAD")
	require.Error(t, err)
	assert.True(t, IsRevisionNotFound(err))
	assert.Contains(t, err.Error(), "v9")
}

func TestRepoLogNotARepo(t *testing.T) {
	_, err := (&RepoLog{}).Log(context.Background(), t.TempDir(), "v1", "HEAD")
	require.Error(t, err)

	var gitErr *GitError
	assert.ErrorAs(t, err, &gitErr)
	assert.Equal(t, "open", gitErr.Command)
}

func TestBackendsAgree(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	f, _ := buildReleaseRepo(t)
	f.commit("[FACT-2] a subject that\nwraps onto a second line\n\nbody text")
	ctx := context.Background()
	classifier := NewClassifier("FACT")

	cliOut, err := (&CLILog{}).Log(ctx, f.dir, "v1", "HEAD")
	require.NoError(t, err)
	goOut, err := (&RepoLog{}).Log(ctx, f.dir, "v1", "HEAD")
	require.NoError(t, err)

	cliGroups := classifier.ParseLog(cliOut)
	goGroups := classifier.ParseLog(goOut)

	require.Equal(t, goGroups.Keys(), cliGroups.Keys())
	for _, key := range goGroups.Keys() {
		want := goGroups.Commits(key)
		got := cliGroups.Commits(key)
		require.Len(t, got, len(want), key)
		for i := range want {
			assert.Equal(t, want[i].Message, got[i].Message)
			assert.True(t, strings.HasPrefix(got[i].SHA, want[i].SHA) || strings.HasPrefix(want[i].SHA, got[i].SHA))
		}
	}
}

func TestCLILogUnknownRevision(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	f, _ := buildReleaseRepo(t)

	_, err := (&CLILog{}).Log(context.Background(), f.dir, "v9", "HEAD")
	require.Error(t, err)
	assert.True(t, IsRevisionNotFound(err))
}

func TestNewLogSource(t *testing.T) {
	src, err := NewLogSource("", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &CLILog{}, src)

	src, err = NewLogSource(BackendGoGit, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &RepoLog{}, src)

	_, err = NewLogSource("svn", zap.NewNop())
	assert.Error(t, err)
}

func TestCLILogRevisionIsNotAnOption(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
	f, _ := buildReleaseRepo(t)
	leak := filepath.Join(t.TempDir(), "leak")

	_, err := (&CLILog{}).Log(context.Background(), f.dir, "--output="+leak, "HEAD")
	require.Error(t, err)

	_, statErr := os.Stat(leak)
	assert.True(t, os.IsNotExist(statErr), "revision was parsed as a git option")
}

func TestRepoLogJoinsWrappedSubject(t *testing.T) {
	f, _ := buildReleaseRepo(t)
	hash := f.commit("[FACT-2] a subject that\nwraps onto a second line\n\nbody text")

	out, err := (&RepoLog{}).Log(context.Background(), f.dir, "v1", "HEAD")
	require.NoError(t, err)

	first := strings.SplitN(out, "\n", 2)[0]
	assert.Equal(t, hash.String()[:7]+" [FACT-2] a subject that wraps onto a second line", first)
}

func TestSubject(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"single line", "single line"},
		{"single line\n", "single line"},
		{"first\nsecond\n\nbody", "first second"},
		{"\n\nleading blank\nlines", "leading blank lines"},
		{"trailing space  \n  indented", "trailing space indented"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, subject(tt.message), tt.message)
	}
}
