package transcript

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `dlg_id,line_n,role,text
0,0,client,Алло
0,1,manager,Здравствуйте
0,2,manager,Меня зовут Иван
1,0,manager,Добрый день
1,1,client,Да
`

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, Row{DialogueID: 0, Line: 2, Role: "manager", Text: "Меня зовут Иван"}, rows[2])
}

func TestReadCSV_ColumnOrderAndExtras(t *testing.T) {
	body := "\ufefftext,role,extra,line_n,dlg_id\n\"Привет, это Мария\",manager,x,0,0\n"
	rows, err := ReadCSV(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Привет, это Мария", rows[0].Text)
	assert.Equal(t, "manager", rows[0].Role)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoRows)

	_, err = ReadCSV(strings.NewReader("dlg_id,line_n,role,text\n"))
	assert.ErrorIs(t, err, ErrNoRows)

	_, err = ReadCSV(strings.NewReader("dlg_id,role,text\n0,manager,x\n"))
	assert.ErrorIs(t, err, ErrBadRow)

	_, err = ReadCSV(strings.NewReader("dlg_id,line_n,role,text\nzero,0,manager,x\n"))
	assert.ErrorIs(t, err, ErrBadRow)
}

func TestGroup(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	dialogues, conflicts, err := Group(rows)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	require.Len(t, dialogues, 2)

	mgr := dialogues[0].Manager()
	require.Len(t, mgr, 2)
	assert.Equal(t, "Здравствуйте", mgr[0].Text)
	assert.Equal(t, "Меня зовут Иван", mgr[1].Text)
	assert.Len(t, dialogues[1].Manager(), 1)
}

func TestGroup_MergesDuplicateKeys(t *testing.T) {
	rows := []Row{
		{DialogueID: 0, Line: 1, Role: "manager", Text: "Спасибо за звонок."},
		{DialogueID: 0, Line: 0, Role: "manager", Text: "Здравствуйте,"},
		{DialogueID: 0, Line: 0, Role: "Manager", Text: " компания Ромашка"},
	}
	dialogues, conflicts, err := Group(rows)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	mgr := dialogues[0].Manager()
	require.Len(t, mgr, 2)
	assert.Equal(t, "Здравствуйте, компания Ромашка", mgr[0].Text)
	assert.Equal(t, 1, mgr[1].Line)
}

func TestGroup_RoleConflict(t *testing.T) {
	rows := []Row{
		{DialogueID: 0, Line: 0, Role: "manager", Text: "Добрый"},
		{DialogueID: 0, Line: 0, Role: "client", Text: " день"},
	}
	dialogues, conflicts, err := Group(rows)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"manager", "client"}, conflicts[0].Roles)
	assert.Empty(t, dialogues[0].Manager())
	assert.Equal(t, RoleUnknown, dialogues[0].Turns[0].Role)
}

func TestGroup_GapsYieldEmptyDialogues(t *testing.T) {
	dialogues, _, err := Group([]Row{{DialogueID: 2, Line: 0, Role: "manager", Text: "Алло"}})
	require.NoError(t, err)
	require.Len(t, dialogues, 3)
	assert.Empty(t, dialogues[0].Turns)
	assert.Equal(t, 2, dialogues[2].ID)
}

func TestGroup_Errors(t *testing.T) {
	_, _, err := Group(nil)
	assert.ErrorIs(t, err, ErrNoRows)

	_, _, err = Group([]Row{{DialogueID: -1}})
	assert.ErrorIs(t, err, ErrBadRow)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleManager, ParseRole(" MANAGER "))
	assert.Equal(t, RoleClient, ParseRole("client"))
	assert.Equal(t, RoleUnknown, ParseRole("managerclient"))
}

func TestLoad_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE transcripts (dlg_id INTEGER, line_n INTEGER, role TEXT, text TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO transcripts VALUES
		(0, 1, 'manager', 'Меня зовут Иван'),
		(0, 0, 'manager', 'Здравствуйте'),
		(0, 0, 'manager', '!'),
		(0, 2, 'client', NULL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	rows, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Здравствуйте", rows[0].Text)
	assert.Equal(t, "!", rows[1].Text)
	assert.Equal(t, "", rows[3].Text)
}

func TestLoad_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	rows, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "none.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
