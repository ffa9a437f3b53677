package service

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePatientReport(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	dir := t.TempDir()
	svc := NewPDFService(log, dir)
	patientID := uuid.New()

	fileName, err := svc.GeneratePatientReport(patientID)
	require.NoError(t, err)
	assert.Contains(t, fileName, patientID.String())

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGeneratePatientReportCreatesExportDir(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	dir := filepath.Join(t.TempDir(), "exports")
	svc := NewPDFService(log, dir)

	_, err := svc.GeneratePatientReport(uuid.New())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
