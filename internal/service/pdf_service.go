package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"
)

// PDFService renders patient report documents into the export directory.
type PDFService struct {
	log       *logrus.Logger
	exportDir string
}

func NewPDFService(log *logrus.Logger, exportDir string) *PDFService {
	return &PDFService{
		log:       log,
		exportDir: exportDir,
	}
}

// GeneratePatientReport writes a report PDF for the given patient and returns
// the generated file name.
func (s *PDFService) GeneratePatientReport(patientID uuid.UUID) (string, error) {
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	fileName := fmt.Sprintf("report_%s.pdf", patientID)
	filePath := filepath.Join(s.exportDir, fileName)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Patient Report for ID: %s", patientID))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 10, "Progress notes and details go here...")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		s.log.Warnf("Failed to write report PDF %s: %+v", filePath, err)
		return "", err
	}

	s.log.Infof("Report PDF generated: %s", filePath)
	return fileName, nil
}

// ExportDir returns the directory PDFs are written to.
func (s *PDFService) ExportDir() string {
	return s.exportDir
}
