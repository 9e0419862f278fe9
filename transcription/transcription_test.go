package transcription

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/transcribeservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

type mockTranscribe struct {
	// statuses returned by successive Get calls
	statuses      []string
	failureReason string
	transcriptUri string

	startCalls  int
	getCalls    int
	deleteCalls int
}

func (m *mockTranscribe) StartTranscriptionJobWithContext(_ aws.Context, input *transcribeservice.StartTranscriptionJobInput, _ ...request.Option) (*transcribeservice.StartTranscriptionJobOutput, error) {
	m.startCalls++
	return &transcribeservice.StartTranscriptionJobOutput{}, nil
}

func (m *mockTranscribe) GetTranscriptionJobWithContext(_ aws.Context, input *transcribeservice.GetTranscriptionJobInput, _ ...request.Option) (*transcribeservice.GetTranscriptionJobOutput, error) {
	status := m.statuses[len(m.statuses)-1]
	if m.getCalls < len(m.statuses) {
		status = m.statuses[m.getCalls]
	}
	m.getCalls++

	job := &transcribeservice.TranscriptionJob{
		TranscriptionJobName:   input.TranscriptionJobName,
		TranscriptionJobStatus: aws.String(status),
	}

	if status == transcribeservice.TranscriptionJobStatusCompleted {
		job.Transcript = &transcribeservice.Transcript{
			TranscriptFileUri: aws.String(m.transcriptUri),
		}
	}
	if status == transcribeservice.TranscriptionJobStatusFailed && m.failureReason != "" {
		job.FailureReason = aws.String(m.failureReason)
	}

	return &transcribeservice.GetTranscriptionJobOutput{TranscriptionJob: job}, nil
}

func (m *mockTranscribe) DeleteTranscriptionJobWithContext(_ aws.Context, _ *transcribeservice.DeleteTranscriptionJobInput, _ ...request.Option) (*transcribeservice.DeleteTranscriptionJobOutput, error) {
	m.deleteCalls++
	return &transcribeservice.DeleteTranscriptionJobOutput{}, nil
}

type mockStorage struct {
	putCalls    int
	deleteCalls int
	lastKey     string
}

func (m *mockStorage) PutObjectWithContext(_ aws.Context, input *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	m.putCalls++
	m.lastKey = *input.Key
	return &s3.PutObjectOutput{}, nil
}

func (m *mockStorage) DeleteObjectWithContext(_ aws.Context, input *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	m.deleteCalls++
	return &s3.DeleteObjectOutput{}, nil
}

func newTestService(transcribe *mockTranscribe, storage *mockStorage) *Service {
	return &Service{
		transcribe:   transcribe,
		storage:      storage,
		bucket:       "test-bucket",
		maxWait:      2 * time.Second,
		pollInterval: time.Millisecond,
		fetchTranscript: func(uri string) ([]byte, error) {
			return []byte(`{"results":{"transcripts":[{"transcript":"spk_0: today I prayed fajr on time. it felt peaceful."}]}}`), nil
		},
		activeJobs: atomic.NewInt64(0),
	}
}

func TestTranscribeAudio_UnsupportedFormat(t *testing.T) {
	transcribe := &mockTranscribe{}
	storage := &mockStorage{}
	svc := newTestService(transcribe, storage)

	_, err := svc.TranscribeAudio(context.Background(), []byte("audio"), "txt")
	require.Error(t, err)

	var tErr *TranscriptionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, ErrorKindUnsupportedFormat, tErr.Kind)
	assert.Contains(t, tErr.Msg, "unsupported audio format")

	// nothing should reach AWS for a rejected format
	assert.Zero(t, storage.putCalls)
	assert.Zero(t, transcribe.startCalls)
}

func TestTranscribeAudio_Success(t *testing.T) {
	transcribe := &mockTranscribe{
		statuses: []string{
			transcribeservice.TranscriptionJobStatusInProgress,
			transcribeservice.TranscriptionJobStatusCompleted,
		},
		transcriptUri: "https://example.com/transcript.json",
	}
	storage := &mockStorage{}
	svc := newTestService(transcribe, storage)

	text, err := svc.TranscribeAudio(context.Background(), []byte("audio"), ".mp3")
	require.NoError(t, err)

	assert.Equal(t, "Today I prayed fajr on time. It felt peaceful.", text)

	assert.Equal(t, 1, storage.putCalls)
	assert.Equal(t, 1, transcribe.startCalls)
	assert.Equal(t, 2, transcribe.getCalls)

	// cleanup runs on the success path
	assert.Equal(t, 1, transcribe.deleteCalls)
	assert.Equal(t, 1, storage.deleteCalls)

	assert.Zero(t, svc.NumActiveJobs())
}

func TestTranscribeAudio_JobFailed(t *testing.T) {
	transcribe := &mockTranscribe{
		statuses:      []string{transcribeservice.TranscriptionJobStatusFailed},
		failureReason: "Unsupported sample rate",
	}
	storage := &mockStorage{}
	svc := newTestService(transcribe, storage)

	_, err := svc.TranscribeAudio(context.Background(), []byte("audio"), "wav")
	require.Error(t, err)

	var tErr *TranscriptionError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, ErrorKindInternal, tErr.Kind)
	assert.Contains(t, tErr.Msg, "Unsupported sample rate")

	// cleanup runs on the failure path too
	assert.Equal(t, 1, transcribe.deleteCalls)
	assert.Equal(t, 1, storage.deleteCalls)
}

func TestTranscribeAudio_Cancelled(t *testing.T) {
	transcribe := &mockTranscribe{
		statuses: []string{transcribeservice.TranscriptionJobStatusInProgress},
	}
	storage := &mockStorage{}
	svc := newTestService(transcribe, storage)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.TranscribeAudio(ctx, []byte("audio"), "ogg")
	require.Error(t, err)

	var tErr *TranscriptionError
	require.ErrorAs(t, err, &tErr)
	assert.Contains(t, tErr.Msg, "cancelled")
}

func TestExtractTranscript(t *testing.T) {
	text, err := extractTranscript([]byte(`{"results":{"transcripts":[{"transcript":"part one."},{"transcript":"part two."}]}}`))
	require.NoError(t, err)
	assert.Equal(t, "part one. part two.", text)

	_, err = extractTranscript([]byte(`{"results":{"transcripts":[]}}`))
	require.Error(t, err)

	_, err = extractTranscript([]byte(`not json`))
	require.Error(t, err)
}
