package bulk

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	root := batchRoot(t)

	tasks, err := Discover(root, "cellar_tree_notice.xml")
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, filepath.Join(root, "32016R0679"), tasks[0].Folder)
	assert.Equal(t, "32016R0679", tasks[0].CELEX)
	assert.Equal(t, "", tasks[1].CELEX, "DIR-1995-46 carries no CELEX")
	assert.Equal(t, filepath.Join(root, "nested", "REG-2016-679", "cellar_tree_notice.xml"), tasks[2].Path)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), "cellar_tree_notice.xml")
	assert.Error(t, err)
}

func TestConfigSelect(t *testing.T) {
	root := batchRoot(t)
	tasks, err := Discover(root, "cellar_tree_notice.xml")
	require.NoError(t, err)

	cases := []struct {
		name    string
		config  Config
		folders []string
	}{
		{"no_filters", Config{}, []string{"32016R0679", "DIR-1995-46", "REG-2016-679"}},
		{"type_filter_case_insensitive", Config{TypeFilter: []string{"reg"}}, []string{"REG-2016-679"}},
		{"two_digit_year", Config{YearFilter: []string{"95"}}, []string{"DIR-1995-46"}},
		{"type_and_year", Config{TypeFilter: []string{"DIR"}, YearFilter: []string{"2016"}}, []string{}},
		{"limit", Config{Limit: 2}, []string{"32016R0679", "DIR-1995-46"}},
		{"limit_after_filter", Config{Limit: 1, TypeFilter: []string{"REG", "DIR"}}, []string{"DIR-1995-46"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			folders := []string{}
			for _, task := range tc.config.Select(tasks) {
				folders = append(folders, filepath.Base(task.Folder))
			}
			assert.Equal(t, tc.folders, folders)
		})
	}
}

func TestRunner_Run(t *testing.T) {
	root := batchRoot(t)
	sink := &mockSink{}
	sink.On("Exists", filepath.Join(root, "32016R0679"), "32016R0679").Return(false)
	sink.On("Write", filepath.Join(root, "32016R0679"), "32016R0679", mock.Anything).Return("a.json", nil)
	sink.On("Write", filepath.Join(root, "nested", "REG-2016-679"), "32016R0679", mock.Anything).Return("b.json", nil)

	config := DefaultConfig()
	config.Root = root
	config.Workers = 2

	runner := NewRunner(NewProcessor(newTestAssembler(t), sink, nil, nil), config, nil)
	var progress []int
	runner.OnProgress(func(done int, total int, entry Entry) {
		assert.Equal(t, 3, total)
		progress = append(progress, done)
	})

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	sink.AssertExpectations(t)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.Discovered)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.ParseErrors)
	assert.Equal(t, 0, report.Skipped)
	assert.ElementsMatch(t, []int{1, 2, 3}, progress)

	require.Len(t, report.Entries, 3)
	assert.Equal(t, StatusSuccess, report.Entries[0].Status)
	assert.Equal(t, StatusParseError, report.Entries[1].Status)
	assert.Equal(t, StatusSuccess, report.Entries[2].Status)
	assert.Equal(t, "32016R0679", report.Entries[2].CELEX, "named by the record")

	assert.Equal(t, 2, report.Totals.Languages)
	assert.Equal(t, 1.0, report.Averages().Languages)

	failed := report.Errors(MaxListedErrors)
	require.Len(t, failed, 1)
	assert.Contains(t, failed[0].Path, "DIR-1995-46")
}

func TestRunner_SkipExisting(t *testing.T) {
	root := batchRoot(t)
	sink := &mockSink{}
	sink.On("Exists", filepath.Join(root, "32016R0679"), "32016R0679").Return(true)
	sink.On("Write", mock.Anything, mock.Anything, mock.Anything).Return("b.json", nil)

	config := DefaultConfig()
	config.Root = root

	report, err := NewRunner(NewProcessor(newTestAssembler(t), sink, nil, nil), config, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, StatusSkipped, report.Entries[0].Status)
	sink.AssertNotCalled(t, "Write", filepath.Join(root, "32016R0679"), "32016R0679", mock.Anything)
}

func TestRunner_NoSkipChecksWhenDisabled(t *testing.T) {
	root := batchRoot(t)
	sink := &mockSink{}
	sink.On("Write", mock.Anything, mock.Anything, mock.Anything).Return("out.json", nil)

	config := DefaultConfig()
	config.Root = root
	config.SkipExisting = false

	report, err := NewRunner(NewProcessor(newTestAssembler(t), sink, nil, nil), config, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded)
	sink.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestRunner_WriteFailure(t *testing.T) {
	root := t.TempDir()
	writeNotice(t, root, "REG-2016-679", regulationNotice)

	sink := &mockSink{}
	sink.On("Write", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("disk full"))

	config := DefaultConfig()
	config.Root = root

	report, err := NewRunner(NewProcessor(newTestAssembler(t), sink, nil, nil), config, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, report.ParseErrors)
	assert.Equal(t, "disk full", report.Entries[0].Error)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := DefaultConfig()
	config.Root = batchRoot(t)

	report, err := NewRunner(NewProcessor(newTestAssembler(t), &mockSink{}, nil, nil), config, nil).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	require.NotNil(t, report)
	assert.Empty(t, report.Entries)
}

func TestRunner_MissingRoot(t *testing.T) {
	config := DefaultConfig()
	config.Root = filepath.Join(t.TempDir(), "missing")

	_, err := NewRunner(NewProcessor(newTestAssembler(t), &mockSink{}, nil, nil), config, nil).Run(context.Background())
	assert.Error(t, err)
}
