package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/cryptokat/internal/models"
)

func TestRunReportFailure(t *testing.T) {
	report := models.NewRunReport("run-1", time.Now())
	assert.Nil(t, report.Failure())

	report.Results = append(report.Results,
		models.TestResult{Alg: "aes", Status: models.StatusPass},
		models.TestResult{Alg: "cbc(aes)", Status: models.StatusFail, Op: "encryption", ErrorKind: models.ErrCodeMismatch},
		models.TestResult{Alg: "ctr(aes)", Status: models.StatusSkip},
		models.TestResult{Alg: "ecb(aes)", Status: models.StatusSkip},
	)

	failure := report.Failure()
	require.NotNil(t, failure)
	assert.Equal(t, "cbc(aes)", failure.Alg)
	assert.Equal(t, models.ErrCodeMismatch, failure.ErrorKind)

	assert.Equal(t, 1, report.Count(models.StatusPass))
	assert.Equal(t, 1, report.Count(models.StatusFail))
	assert.Equal(t, 2, report.Count(models.StatusSkip))
}
