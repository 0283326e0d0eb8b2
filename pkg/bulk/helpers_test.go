package bulk

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mnov88/marked/pkg/extract"
	"github.com/mnov88/marked/pkg/mapping"
	"github.com/mnov88/marked/pkg/notice"
)

const regulationNotice = `<NOTICE>
  <WORK>
    <RESOURCE_LEGAL_ID_CELEX><VALUE>62019CJ0645</VALUE></RESOURCE_LEGAL_ID_CELEX>
  </WORK>
  <WORK>
    <RESOURCE_LEGAL_ID_CELEX><VALUE>32016R0679</VALUE></RESOURCE_LEGAL_ID_CELEX>
    <RESOURCE_LEGAL_DATE_SIGNATURE><VALUE>2016-04-27</VALUE></RESOURCE_LEGAL_DATE_SIGNATURE>
    <WORK_CITES_WORK><SAMEAS><URI><IDENTIFIER>31995L0046</IDENTIFIER></URI></SAMEAS></WORK_CITES_WORK>
  </WORK>
  <EXPRESSION>
    <EXPRESSION_USES_LANGUAGE><URI><IDENTIFIER>ENG</IDENTIFIER></URI></EXPRESSION_USES_LANGUAGE>
    <EXPRESSION_TITLE><VALUE>Regulation (EU) 2016/679</VALUE></EXPRESSION_TITLE>
  </EXPRESSION>
</NOTICE>`

const malformedNotice = `<NOTICE><WORK></NOTICE>`

type mockSink struct {
	mock.Mock
}

func (sink *mockSink) Exists(folder string, celex string) bool {
	args := sink.Called(folder, celex)
	return args.Bool(0)
}

func (sink *mockSink) Write(folder string, celex string, record *extract.Record) (string, error) {
	args := sink.Called(folder, celex, record)
	return args.String(0), args.Error(1)
}

func newTestAssembler(t *testing.T) *extract.Assembler {
	t.Helper()
	fieldMapping, err := mapping.LoadDefault()
	require.NoError(t, err)
	assembler, err := extract.NewAssembler(fieldMapping, extract.WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)
	return assembler
}

// writeNotice stores content as the conventional notice file in root/folder
// and returns its path.
func writeNotice(t *testing.T, root string, folder string, content string) string {
	t.Helper()
	directory := filepath.Join(root, folder)
	require.NoError(t, os.MkdirAll(directory, 0755))
	path := filepath.Join(directory, notice.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// batchRoot lays out three notices: one in a CELEX-named folder, one
// malformed, one in a TYPE-YEAR-NUMBER folder, plus an unrelated file.
func batchRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeNotice(t, root, "32016R0679", regulationNotice)
	writeNotice(t, root, "DIR-1995-46", malformedNotice)
	writeNotice(t, root, filepath.Join("nested", "REG-2016-679"), regulationNotice)
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("notes"), 0644))
	return root
}
