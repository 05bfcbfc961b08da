package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordsprint/wordsprint-api/internal/config"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/mocks"
	"github.com/wordsprint/wordsprint-api/internal/sampling"
)

func executeRoot(args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "seed"})
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestMigrateCmd_RejectsUnknownCommand(t *testing.T) {
	t.Parallel()

	_, err := executeRoot("migrate", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown migration command "sideways"`)
}

func TestSeedCmd_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := executeRoot("seed", "--file", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode word list")
}

func TestServeCmd_RequiresValidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := executeRoot("--config", path, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestQuizDefaults(t *testing.T) {
	t.Parallel()

	got, err := quizDefaults(config.QuizConfig{
		DefaultCount:      7,
		DefaultFreshMode:  "tr_en_choice",
		DefaultReviewMode: "en_tr_typing",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Count)
	assert.Equal(t, domain.QuizModeTurkishToEnglishChoice, got.FreshMode)
	assert.Equal(t, domain.QuizModeEnglishToTurkishTyping, got.ReviewMode)

	_, err = quizDefaults(config.QuizConfig{DefaultFreshMode: "xx", DefaultReviewMode: "en_tr_typing"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuizMode)
}

func TestNewSampler(t *testing.T) {
	t.Parallel()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	a := newSampler(config.QuizConfig{RandomSeed: 99}, log)
	b := newSampler(config.QuizConfig{RandomSeed: 99}, log)
	assert.Equal(t, a.Indices(20, 5), b.Indices(20, 5))
	assert.IsType(t, &sampling.Sampler{}, newSampler(config.QuizConfig{}, log))
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	app := &application{
		config: &config.Config{Server: config.ServerConfig{
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		}},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	router, _ := testRouter(t, &mocks.MockLearningService{}, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln, router) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
