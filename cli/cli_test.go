package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesqa/callcheck/analysis"
	"github.com/salesqa/callcheck/clients"
)

var testLemmas = map[string]string{
	"Здравствуйте": "здравствовать",
	"Меня":         "я",
	"зовут":        "звать",
	"свидания":     "свидание",
}

// fakeGateway serves /annotate with whitespace tokenization.
func fakeGateway(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req clients.AnnotateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var resp clients.AnnotateResp
		for i, word := range strings.Fields(req.Text) {
			lemma, ok := testLemmas[word]
			if !ok {
				lemma = strings.ToLower(word)
			}
			resp.Tokens = append(resp.Tokens, analysis.Token{Index: i, Text: word, Lemma: lemma, Rel: "dep"})
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// testEnv points the config at a temp dir, a gazetteer and the fake gateway.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	names := filepath.Join(dir, "names.json")
	require.NoError(t, os.WriteFile(names, []byte(`["иван"]`), 0o600))
	t.Setenv("CALLCHECK_PATHS_GAZETTEER", names)
	t.Setenv("CALLCHECK_SERVICES_NLP_URL", fakeGateway(t).URL)
	t.Setenv("CALLCHECK_PIPELINE_LOG_LEVEL", "error")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "callcheck version test-version-1.0.0")
}

func TestConfigCmd(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "leading: 5")
	assert.Contains(t, out, "trailing: 6")
	assert.Contains(t, out, "names.json")
}

func TestClassifyCmd(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "classify", "Меня", "зовут", "Иван")
	require.NoError(t, err)
	assert.Contains(t, out, "greeting:  false")
	assert.Contains(t, out, "manager:   Иван")
	assert.Contains(t, out, "company:   -")

	out, err = execute(t, "classify", "Здравствуйте")
	require.NoError(t, err)
	assert.Contains(t, out, "greeting:  true")
}

func TestClassifyCmd_MissingGazetteer(t *testing.T) {
	testEnv(t)
	t.Setenv("CALLCHECK_PATHS_GAZETTEER", filepath.Join(t.TempDir(), "none.json"))

	_, err := execute(t, "classify", "Здравствуйте")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCmd(t *testing.T) {
	dir := testEnv(t)

	var b strings.Builder
	b.WriteString("dlg_id,line_n,role,text\n")
	turns := []string{"Здравствуйте", "Меня зовут Иван", "x", "x", "x", "x", "x", "До свидания"}
	for i, text := range turns {
		b.WriteString("0," + strconv.Itoa(i) + ",manager," + text + "\n")
	}
	path := filepath.Join(dir, "calls.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))

	outputs := filepath.Join(dir, "out")
	out, err := execute(t, "run", "--outputs", outputs, "--format", "csv", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1/1 dialogues compliant")

	sessions, err := os.ReadDir(outputs)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	csv, err := os.ReadFile(filepath.Join(outputs, sessions[0].Name(), "result_parsing.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csv), "0,Здравствуйте,Меня зовут Иван,Иван,,До свидания,True")
}
