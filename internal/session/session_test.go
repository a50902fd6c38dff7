package session

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/vfsh/internal/filesystem"
	"github.com/vvka-141/vfsh/internal/sessionlog"
	"github.com/vvka-141/vfsh/internal/vfs"
	"github.com/vvka-141/vfsh/pkg/vfsh"
)

const testLogPath = "/logs/session.xml"

type fixture struct {
	sess *Session
	log  *sessionlog.Log
	fs   *filesystem.MemoryFileSystem
	out  *bytes.Buffer
}

func newFixture(t *testing.T, entries ...string) *fixture {
	t.Helper()
	mfs := filesystem.NewMemoryFileSystem()
	log := sessionlog.NewWithFS("tester", mfs)
	out := &bytes.Buffer{}

	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	sess := New(vfs.Build(entries), log, Options{
		LogPath: testLogPath,
		Out:     out,
		Clock:   clock,
	})
	return &fixture{sess: sess, log: log, fs: mfs, out: out}
}

// exec runs line and returns what it printed.
func (f *fixture) exec(t *testing.T, line string) (string, error) {
	t.Helper()
	f.out.Reset()
	err := f.sess.Execute(line)
	return f.out.String(), err
}

func TestScenario_NavigateRemoveAndTree(t *testing.T) {
	f := newFixture(t, "a/b/c", "a/d")

	out, err := f.exec(t, "ls")
	require.NoError(t, err)
	assert.Equal(t, "a\n", out)

	_, err = f.exec(t, "cd a")
	require.NoError(t, err)
	out, _ = f.exec(t, "ls")
	assert.Equal(t, "b\nd\n", out)

	_, err = f.exec(t, "cd b")
	require.NoError(t, err)
	out, _ = f.exec(t, "ls")
	assert.Equal(t, "c\n", out)

	_, _ = f.exec(t, "cd ..")
	assert.Equal(t, "/a", f.sess.Cwd())
	_, _ = f.exec(t, "cd ..")
	assert.Equal(t, "/", f.sess.Cwd())

	out, err = f.exec(t, "tree a")
	require.NoError(t, err)
	assert.Equal(t, "|-- b\n    |-- c\n|-- d\n", out)

	out, err = f.exec(t, "rm a/d")
	require.NoError(t, err)
	assert.Equal(t, "Removed: a/d\n", out)

	_, _ = f.exec(t, "cd a")
	out, _ = f.exec(t, "ls")
	assert.Equal(t, "b\n", out)

	out, err = f.exec(t, "cd nope")
	assert.ErrorIs(t, err, vfsh.ErrNotFound)
	assert.Equal(t, "directory 'nope' not found\n", out)
	assert.Equal(t, "/a", f.sess.Cwd())

	out, err = f.exec(t, "tree")
	require.NoError(t, err)
	assert.Equal(t, "|-- b\n    |-- c\n", out)
}

func TestCd_RootAndAbsolute(t *testing.T) {
	f := newFixture(t, "a/b/c", "x/y")

	require.NoError(t, f.sess.Cd("/a/b/c"))
	assert.Equal(t, "/a/b/c", f.sess.Cwd())

	require.NoError(t, f.sess.Cd("/"))
	assert.Equal(t, "/", f.sess.Cwd())

	require.NoError(t, f.sess.Cd("x/"))
	assert.Equal(t, "/x", f.sess.Cwd())

	require.NoError(t, f.sess.Cd("./y"))
	assert.Equal(t, "/x/y", f.sess.Cwd())
}

func TestCd_ParentAtRootIsNoOp(t *testing.T) {
	f := newFixture(t, "a")

	require.NoError(t, f.sess.Cd(".."))
	assert.Equal(t, "/", f.sess.Cwd())
}

func TestCd_MidPathParentIsLiteral(t *testing.T) {
	f := newFixture(t, "a/b", "c")

	err := f.sess.Cd("a/../c")
	assert.ErrorIs(t, err, vfsh.ErrNotFound)
	assert.Equal(t, "/", f.sess.Cwd())
}

func TestRm_IgnoresCwd(t *testing.T) {
	f := newFixture(t, "a/b", "b")

	require.NoError(t, f.sess.Cd("a"))
	require.NoError(t, f.sess.Rm("b"))

	assert.False(t, treeHas(f, "/b"))
	assert.True(t, treeHas(f, "/a/b"))
}

func TestRm_TwiceIsNotFound(t *testing.T) {
	f := newFixture(t, "a/d")

	require.NoError(t, f.sess.Rm("a/d"))
	out, err := f.exec(t, "rm a/d")
	assert.ErrorIs(t, err, vfsh.ErrNotFound)
	assert.Equal(t, "file or directory 'a/d' not found\n", out)
}

func TestRm_Root(t *testing.T) {
	f := newFixture(t, "a")

	out, err := f.exec(t, "rm /")
	assert.ErrorIs(t, err, vfsh.ErrRootRemoval)
	assert.Equal(t, "cannot remove root directory\n", out)
	assert.True(t, treeHas(f, "/a"))
}

func TestRm_CwdMovesToNearestAncestor(t *testing.T) {
	f := newFixture(t, "a/b/c", "a/d")

	require.NoError(t, f.sess.Cd("/a/b/c"))
	require.NoError(t, f.sess.Rm("a/b"))
	assert.Equal(t, "/a", f.sess.Cwd())

	out, err := f.exec(t, "ls")
	require.NoError(t, err)
	assert.Equal(t, "d\n", out)

	require.NoError(t, f.sess.Rm("/a"))
	assert.Equal(t, "/", f.sess.Cwd())
}

func TestTree_MissingPath(t *testing.T) {
	f := newFixture(t, "a")

	out, err := f.exec(t, "tree nope")
	assert.ErrorIs(t, err, vfsh.ErrNotFound)
	assert.Equal(t, "directory 'nope' not found\n", out)
}

func TestTree_IndentGrowsByOneLevel(t *testing.T) {
	f := newFixture(t, "a/b/c/d/e")

	out, err := f.exec(t, "tree")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	for depth, line := range lines {
		assert.True(t, strings.HasPrefix(line, strings.Repeat("    ", depth)+"|-- "), "line %q", line)
	}
}

func TestTree_TopLevelMatchesLs(t *testing.T) {
	f := newFixture(t, "r/one/x", "r/two", "r/three/y/z")
	require.NoError(t, f.sess.Cd("r"))

	lsOut, _ := f.exec(t, "ls")
	treeOut, _ := f.exec(t, "tree")

	var top []string
	for _, line := range strings.Split(strings.TrimSuffix(treeOut, "\n"), "\n") {
		if strings.HasPrefix(line, "|-- ") {
			top = append(top, strings.TrimPrefix(line, "|-- "))
		}
	}
	assert.Equal(t, strings.Split(strings.TrimSuffix(lsOut, "\n"), "\n"), top)
}

func TestTree_CustomIndentAndBranch(t *testing.T) {
	out := &bytes.Buffer{}
	sess := New(vfs.Build([]string{"a/b"}), sessionlog.NewWithFS("u", filesystem.NewMemoryFileSystem()), Options{
		Out:        out,
		TreeIndent: "..",
		TreeBranch: "+ ",
		Styles:     Styles{Branch: func(s string) string { return "[" + s + "]" }},
	})

	require.NoError(t, sess.Tree(""))
	assert.Equal(t, "[+ ]a\n..[+ ]b\n", out.String())
}

func TestExecute_UnknownCommandNotRecorded(t *testing.T) {
	f := newFixture(t, "a")

	for _, line := range []string{"pwd", "cd", "ls -la", "exit now"} {
		out, err := f.exec(t, line)
		assert.ErrorIs(t, err, vfsh.ErrUnknownCommand)
		assert.Equal(t, "command '"+line+"' not found.\n", out)
	}
	assert.Equal(t, 0, f.log.Len())
}

func TestExecute_BlankLineIgnored(t *testing.T) {
	f := newFixture(t, "a")

	out, err := f.exec(t, "   ")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, f.log.Len())
}

func TestExecute_TrimsInput(t *testing.T) {
	f := newFixture(t, "a")

	_, err := f.exec(t, "  cd   a  ")
	require.NoError(t, err)
	assert.Equal(t, "/a", f.sess.Cwd())
	assert.Equal(t, "cd a", f.log.Records()[0].Command)
}

func TestLog_EveryCommandRecordedInOrder(t *testing.T) {
	f := newFixture(t, "a/b/c", "a/d")
	lines := []string{"ls", "cd a", "cd nope", "rm a/d", "rm a/d", "tree", "tree /x", "bogus", "exit"}

	for _, line := range lines {
		_, _ = f.exec(t, line)
	}

	records := f.log.Records()
	want := []string{"ls", "cd a", "cd nope", "rm a/d", "rm a/d", "tree", "tree /x", "exit"}
	require.Len(t, records, len(want))

	for i, r := range records {
		assert.Equal(t, want[i], r.Command)
		if i > 0 {
			assert.False(t, r.Timestamp.Before(records[i-1].Timestamp))
		}
	}
	assert.Equal(t, sessionlog.StatusNotFound, records[2].Status)
	assert.Equal(t, sessionlog.StatusOK, records[3].Status)
	assert.Equal(t, sessionlog.StatusNotFound, records[4].Status)
}

func TestExit_FlushesOnceWithExitRecord(t *testing.T) {
	f := newFixture(t, "a")

	_, _ = f.exec(t, "ls")
	out, err := f.exec(t, "exit")
	require.NoError(t, err)
	assert.Equal(t, "Exiting...\n", out)
	assert.True(t, f.sess.Exited())

	data, ok := f.fs.Content(testLogPath)
	require.True(t, ok)

	var doc struct {
		User     string `xml:"user,attr"`
		Commands []struct {
			Name string `xml:"name,attr"`
		} `xml:"command"`
	}
	require.NoError(t, xml.Unmarshal(data, &doc))
	assert.Equal(t, "tester", doc.User)
	require.Len(t, doc.Commands, 2)
	assert.Equal(t, "exit", doc.Commands[1].Name)

	assert.ErrorIs(t, f.sess.Execute("ls"), ErrClosed)
	assert.ErrorIs(t, f.sess.Exit(), ErrClosed)
	assert.Equal(t, 2, f.log.Len())
}

func TestRun_PanicIsRecovered(t *testing.T) {
	f := newFixture(t, "a")

	err := f.sess.run("ls", func() error { panic("boom") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, f.out.String(), "error: ls panicked: boom")

	records := f.log.Records()
	require.Len(t, records, 1)
	assert.Equal(t, sessionlog.StatusError, records[0].Status)

	_, err = f.exec(t, "cd a")
	require.NoError(t, err)
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		name     string
		cd       string
		template string
		user     string
		want     string
	}{
		{name: "root", template: vfsh.DefaultPrompt, user: "alice", want: "alice@shell:/$ "},
		{name: "nested cwd", cd: "a/b", template: vfsh.DefaultPrompt, user: "bob", want: "bob@shell:/a/b$ "},
		{name: "cwd only", cd: "a", template: "[{cwd}]", user: "bob", want: "[/a]"},
		{name: "no placeholders", template: "> ", user: "bob", want: "> "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "a/b/")
			if tt.cd != "" {
				require.NoError(t, f.sess.Cd(tt.cd))
			}
			assert.Equal(t, tt.want, f.sess.Prompt(tt.template, tt.user))
		})
	}
}

func TestNew_NilArgumentsPanic(t *testing.T) {
	log := sessionlog.NewWithFS("u", filesystem.NewMemoryFileSystem())
	assert.Panics(t, func() { New(nil, log, Options{}) })
	assert.Panics(t, func() { New(vfs.Build(nil), nil, Options{}) })
}

func treeHas(f *fixture, p string) bool {
	return f.sess.tree.Exists(p)
}
