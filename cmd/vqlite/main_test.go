package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/NebulousLabs/fastrand"

	"vqlite/row"
	"vqlite/table"
)

func newTempDB(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "vqlite-*.db")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

// runScript drives run() over a fresh table with the given input lines,
// mirroring the scripted-command test pattern used against the real REPL
// binary, but in-process over run()'s io.Reader/io.Writer seam.
func runScript(t *testing.T, path string, lines []string) string {
	t.Helper()

	tbl, err := table.Open(path)
	if err != nil {
		t.Fatalf("table.Open: %v", err)
	}

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer

	err = run(in, &out, tbl)
	if err == errExit {
		if err := tbl.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	} else if err != nil {
		t.Fatalf("run: %v", err)
	} else {
		tbl.Pager.Close()
	}

	return out.String()
}

// S1 — insert and retrieve.
func TestScenarioInsertAndRetrieve(t *testing.T) {
	out := runScript(t, newTempDB(t), []string{
		"insert 1 user1 person1@example.com",
		"select",
		".exit",
	})

	want := "db > Executed.\n" +
		"db > (1, user1, person1@example.com)\n" +
		"Executed.\n" +
		"db > "
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

// S2 — persistence across restart.
func TestScenarioPersistenceAcrossRestart(t *testing.T) {
	path := newTempDB(t)

	runScript(t, path, []string{
		"insert 1 user1 person1@example.com",
		".exit",
	})

	out := runScript(t, path, []string{
		"select",
		".exit",
	})

	want := "db > (1, user1, person1@example.com)\n" +
		"Executed.\n" +
		"db > "
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

// S3 — table-full boundary.
func TestScenarioTableFullBoundary(t *testing.T) {
	var lines []string
	for id := 1; id <= 13; id++ {
		lines = append(lines, fmt.Sprintf("insert %d user%d person%d@example.com", id, id, id))
	}
	lines = append(lines, "insert 14 user14 person14@example.com")
	lines = append(lines, "select")
	lines = append(lines, ".exit")

	out := runScript(t, newTempDB(t), lines)

	if !strings.Contains(out, "Error: Table full.\n") {
		t.Fatalf("expected 'Error: Table full.' in output, got %q", out)
	}
	if strings.Count(out, "@example.com)") != 13 {
		t.Fatalf("expected exactly 13 rows in select output, got %q", out)
	}
}

// S4 — over-length strings.
func TestScenarioOverlengthUsername(t *testing.T) {
	longUsername := strings.Repeat("a", 33)
	out := runScript(t, newTempDB(t), []string{
		"insert 1 " + longUsername + " bar@x.com",
		".exit",
	})

	want := "db > String is too long.\ndb > "
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

// S5 — negative id.
func TestScenarioNegativeID(t *testing.T) {
	out := runScript(t, newTempDB(t), []string{
		"insert -1 foo bar@x",
		".exit",
	})

	want := "db > ID must be positive.\ndb > "
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

// S6 — unrecognized statement and meta-command.
func TestScenarioUnrecognized(t *testing.T) {
	out := runScript(t, newTempDB(t), []string{
		"frobnicate",
		".nope",
		".exit",
	})

	want := "db > Unrecognized keyword at start of 'frobnicate'.\n" +
		"db > Unrecognized command '.nope'.\n" +
		"db > "
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestConstantsCommand(t *testing.T) {
	out := runScript(t, newTempDB(t), []string{
		".constants",
		".exit",
	})

	for _, want := range []string{
		"ROW_SIZE: 293",
		"LEAF_NODE_MAX_CELLS: 13",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in .constants output, got %q", want, out)
		}
	}
}

func TestBtreeCommand(t *testing.T) {
	out := runScript(t, newTempDB(t), []string{
		"insert 1 user1 person1@example.com",
		".btree",
		".exit",
	})

	if !strings.Contains(out, "leaf (size 1)") {
		t.Fatalf("expected 'leaf (size 1)' in .btree output, got %q", out)
	}
	if !strings.Contains(out, "  - 0 : 1") {
		t.Fatalf("expected cell 0 key 1 in .btree output, got %q", out)
	}
}

// randomToken returns a random whitespace-free, NUL-free string of exactly
// n bytes, safe to use as an insert statement's username/email field.
func randomToken(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[fastrand.Intn(len(alphabet))]
	}
	return string(b)
}

func TestInsertRandomPayloadsAtCapAreAccepted(t *testing.T) {
	db := newTempDB(t)
	for i := 0; i < 5; i++ {
		username := randomToken(row.UsernameSize)
		email := randomToken(row.EmailSize)

		out := runScript(t, db, []string{
			fmt.Sprintf("insert %d %s %s", i, username, email),
			".exit",
		})
		if !strings.Contains(out, "Executed.") {
			t.Fatalf("insert of at-cap random payload failed: %q", out)
		}
	}
}

func TestInsertRandomPayloadsPastCapAreRejected(t *testing.T) {
	for i := 0; i < 5; i++ {
		username := randomToken(row.UsernameSize + 1 + fastrand.Intn(16))
		out := runScript(t, newTempDB(t), []string{
			fmt.Sprintf("insert 1 %s e@x.com", username),
			".exit",
		})
		if !strings.Contains(out, "String is too long.") {
			t.Fatalf("insert of over-cap username (len %d) was not rejected: %q", len(username), out)
		}
	}

	for i := 0; i < 5; i++ {
		email := randomToken(row.EmailSize + 1 + fastrand.Intn(16))
		out := runScript(t, newTempDB(t), []string{
			fmt.Sprintf("insert 1 user %s", email),
			".exit",
		})
		if !strings.Contains(out, "String is too long.") {
			t.Fatalf("insert of over-cap email (len %d) was not rejected: %q", len(email), out)
		}
	}
}
