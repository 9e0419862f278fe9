package transcription

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"muhasab-server/notify"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/transcribeservice"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

const pollInterval = 5 * time.Second
const defaultMaxWait = 10 * time.Minute

type ErrorKind int

const (
	ErrorKindInternal ErrorKind = iota
	ErrorKindUnsupportedFormat
)

// TranscriptionError is the single error type surfaced by the service.
// Any unsupported format, job failure, or error during the sequence wraps
// into one of these. Kind lets callers map the error without inspecting
// the message.
type TranscriptionError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *TranscriptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

var supportedFormats = map[string]string{
	"mp3":  transcribeservice.MediaFormatMp3,
	"mp4":  transcribeservice.MediaFormatMp4,
	"m4a":  transcribeservice.MediaFormatMp4,
	"wav":  transcribeservice.MediaFormatWav,
	"flac": transcribeservice.MediaFormatFlac,
	"ogg":  transcribeservice.MediaFormatOgg,
	"amr":  transcribeservice.MediaFormatAmr,
	"webm": transcribeservice.MediaFormatWebm,
}

// SupportedFormat reports whether a file extension (with or without a
// leading dot) is on the allow-list.
func SupportedFormat(ext string) bool {
	_, ok := supportedFormats[normalizeExt(ext)]
	return ok
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

type transcribeAPI interface {
	StartTranscriptionJobWithContext(aws.Context, *transcribeservice.StartTranscriptionJobInput, ...request.Option) (*transcribeservice.StartTranscriptionJobOutput, error)
	GetTranscriptionJobWithContext(aws.Context, *transcribeservice.GetTranscriptionJobInput, ...request.Option) (*transcribeservice.GetTranscriptionJobOutput, error)
	DeleteTranscriptionJobWithContext(aws.Context, *transcribeservice.DeleteTranscriptionJobInput, ...request.Option) (*transcribeservice.DeleteTranscriptionJobOutput, error)
}

type storageAPI interface {
	PutObjectWithContext(aws.Context, *s3.PutObjectInput, ...request.Option) (*s3.PutObjectOutput, error)
	DeleteObjectWithContext(aws.Context, *s3.DeleteObjectInput, ...request.Option) (*s3.DeleteObjectOutput, error)
}

type Service struct {
	transcribe   transcribeAPI
	storage      storageAPI
	bucket       string
	maxWait      time.Duration
	pollInterval time.Duration

	// fetches the transcript JSON from the job's TranscriptFileUri
	fetchTranscript func(uri string) ([]byte, error)

	activeJobs *atomic.Int64
}

// NewService builds a Service backed by AWS Transcribe and S3. The media
// bucket comes from TRANSCRIBE_BUCKET.
func NewService() (*Service, error) {
	sess, err := session.NewSession()
	if err != nil {
		return nil, fmt.Errorf("error creating AWS session: %v", err)
	}

	bucket := os.Getenv("TRANSCRIBE_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("TRANSCRIBE_BUCKET environment variable must be set")
	}

	maxWait := defaultMaxWait
	if s := os.Getenv("TRANSCRIBE_TIMEOUT"); s != "" {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid TRANSCRIBE_TIMEOUT: %v", err)
		}
		maxWait = parsed
	}

	return &Service{
		transcribe:      transcribeservice.New(sess),
		storage:         s3.New(sess),
		bucket:          bucket,
		maxWait:         maxWait,
		pollInterval:    pollInterval,
		fetchTranscript: fetchTranscriptHttp,
		activeJobs:      atomic.NewInt64(0),
	}, nil
}

// NumActiveJobs is used to drain in-flight transcriptions on shutdown.
func (svc *Service) NumActiveJobs() int {
	return int(svc.activeJobs.Load())
}

// TranscribeAudio converts an audio buffer into text. It validates the
// format, stages the audio in S3, starts a transcription job, polls on a
// fixed interval until the job reaches a terminal state, fetches and
// reformats the transcript, then deletes the remote job and the staged
// media. Cleanup runs on both success and failure paths.
func (svc *Service) TranscribeAudio(ctx aws.Context, audio []byte, fileExtension string) (string, error) {
	ext := normalizeExt(fileExtension)
	mediaFormat, ok := supportedFormats[ext]
	if !ok {
		return "", &TranscriptionError{Kind: ErrorKindUnsupportedFormat, Msg: fmt.Sprintf("unsupported audio format: %s", fileExtension)}
	}

	svc.activeJobs.Inc()
	defer svc.activeJobs.Dec()

	tmpFile, err := os.CreateTemp("", "muhasab-audio-*."+ext)
	if err != nil {
		return "", &TranscriptionError{Msg: "error creating temp file", Err: err}
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Printf("error removing temp audio file %s: %v\n", tmpPath, err)
		}
	}()

	if _, err := tmpFile.Write(audio); err != nil {
		tmpFile.Close()
		return "", &TranscriptionError{Msg: "error writing temp file", Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		return "", &TranscriptionError{Msg: "error closing temp file", Err: err}
	}

	jobName := "muhasab-" + uuid.New().String()
	key := "uploads/" + jobName + "." + ext

	file, err := os.Open(tmpPath)
	if err != nil {
		return "", &TranscriptionError{Msg: "error opening temp file", Err: err}
	}
	defer file.Close()

	_, err = svc.storage.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return "", &TranscriptionError{Msg: "error uploading audio to S3", Err: err}
	}
	defer func() {
		_, err := svc.storage.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(svc.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			log.Printf("error deleting staged audio %s: %v\n", key, err)
		}
	}()

	_, err = svc.transcribe.StartTranscriptionJobWithContext(ctx, &transcribeservice.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
		LanguageCode:         aws.String(languageCode()),
		MediaFormat:          aws.String(mediaFormat),
		Media: &transcribeservice.Media{
			MediaFileUri: aws.String(fmt.Sprintf("s3://%s/%s", svc.bucket, key)),
		},
	})
	if err != nil {
		return "", &TranscriptionError{Msg: "error starting transcription job", Err: err}
	}
	defer func() {
		_, err := svc.transcribe.DeleteTranscriptionJobWithContext(ctx, &transcribeservice.DeleteTranscriptionJobInput{
			TranscriptionJobName: aws.String(jobName),
		})
		if err != nil {
			log.Printf("error deleting transcription job %s: %v\n", jobName, err)
		}
	}()

	job, err := svc.waitForJob(ctx, jobName)
	if err != nil {
		return "", err
	}

	if job.Transcript == nil || job.Transcript.TranscriptFileUri == nil {
		return "", &TranscriptionError{Msg: "transcription job completed without a transcript uri"}
	}

	body, err := svc.fetchTranscript(*job.Transcript.TranscriptFileUri)
	if err != nil {
		return "", &TranscriptionError{Msg: "error fetching transcript", Err: err}
	}

	text, err := extractTranscript(body)
	if err != nil {
		return "", &TranscriptionError{Msg: "error parsing transcript", Err: err}
	}

	return FormatTranscript(text), nil
}

// waitForJob polls the job on a fixed interval until COMPLETED or FAILED.
// The interval is deliberately fixed rather than backed off; jobs for short
// recordings usually finish within a few polls.
func (svc *Service) waitForJob(ctx aws.Context, jobName string) (*transcribeservice.TranscriptionJob, error) {
	ticker := time.NewTicker(svc.pollInterval)
	defer ticker.Stop()

	deadline := time.NewTimer(svc.maxWait)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, &TranscriptionError{Msg: "transcription cancelled", Err: ctx.Err()}
		case <-deadline.C:
			return nil, &TranscriptionError{Msg: fmt.Sprintf("transcription job %s timed out after %s", jobName, svc.maxWait)}
		case <-ticker.C:
			res, err := svc.transcribe.GetTranscriptionJobWithContext(ctx, &transcribeservice.GetTranscriptionJobInput{
				TranscriptionJobName: aws.String(jobName),
			})
			if err != nil {
				return nil, &TranscriptionError{Msg: "error polling transcription job", Err: err}
			}

			job := res.TranscriptionJob
			if job == nil || job.TranscriptionJobStatus == nil {
				continue
			}

			switch *job.TranscriptionJobStatus {
			case transcribeservice.TranscriptionJobStatusCompleted:
				return job, nil
			case transcribeservice.TranscriptionJobStatusFailed:
				reason := "unknown"
				if job.FailureReason != nil {
					reason = *job.FailureReason
				}
				notify.NotifyErr(notify.SeverityError, "transcription job failed", jobName, reason)
				return nil, &TranscriptionError{Msg: fmt.Sprintf("transcription job failed: %s", reason)}
			}
		}
	}
}

// transcriptDoc matches the shape of the JSON document at the job's
// TranscriptFileUri.
type transcriptDoc struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

func extractTranscript(body []byte) (string, error) {
	var doc transcriptDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", err
	}

	if len(doc.Results.Transcripts) == 0 {
		return "", fmt.Errorf("no transcripts in result document")
	}

	var parts []string
	for _, t := range doc.Results.Transcripts {
		parts = append(parts, t.Transcript)
	}

	return strings.Join(parts, " "), nil
}

func fetchTranscriptHttp(uri string) ([]byte, error) {
	resp, err := http.Get(uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcript fetch returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func languageCode() string {
	if code := os.Getenv("TRANSCRIBE_LANGUAGE"); code != "" {
		return code
	}
	return "en-US"
}
