package pipeline

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/destination"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
	"github.com/joseph-ayodele/resumes-tracker/internal/mapper"
)

// HistoryRecorder persists finished batches.
type HistoryRecorder interface {
	RecordBatch(ctx context.Context, source constants.RunSource, databaseID string, result entity.BatchResult) error
}

// Preview is one record mapped but not uploaded.
type Preview struct {
	Index      int                `json:"index"`
	Identifier string             `json:"identifier"`
	Properties entity.PropertySet `json:"properties,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// maxSessions bounds the session cache; the oldest entry is evicted first.
const maxSessions = 32

// sessionKey holds a digest of the credential rather than the credential itself.
type sessionKey struct {
	credential [sha256.Size]byte
	databaseID string
}

// Service is the caller-facing entry point. It keeps one Session per
// credential and database, so the schema is fetched once and reused until
// Reconnect. Sessions that fail to connect are dropped.
type Service struct {
	factory destination.Factory
	mapper  *mapper.Mapper
	history HistoryRecorder
	log     *slog.Logger

	mu       sync.Mutex
	sessions map[sessionKey]*Session
	order    []sessionKey
}

// NewService builds a Service. history may be nil.
func NewService(factory destination.Factory, history HistoryRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		factory:  factory,
		mapper:   mapper.New(logger),
		history:  history,
		log:      logger,
		sessions: make(map[sessionKey]*Session),
	}
}

func (s *Service) session(credential, databaseID string) (*Session, sessionKey, error) {
	credential = strings.TrimSpace(credential)
	databaseID = strings.TrimSpace(databaseID)
	v := common.NewValidator().
		Field("credential", credential, common.Required).
		Field("database_id", databaseID, common.Required)
	if err := v.Error(); err != nil {
		return nil, sessionKey{}, common.NewConnectionError("destination not configured", err)
	}

	key := sessionKey{credential: sha256.Sum256([]byte(credential)), databaseID: databaseID}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[key]; ok {
		return sess, key, nil
	}
	if len(s.order) >= maxSessions {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.sessions, oldest)
		s.log.Debug("pipeline.session.evicted", "database_id", oldest.databaseID)
	}
	sess := NewSession(s.factory(credential), databaseID, s.log)
	s.sessions[key] = sess
	s.order = append(s.order, key)
	return sess, key, nil
}

func (s *Service) drop(key sessionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[key]; !ok {
		return
	}
	delete(s.sessions, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// connect returns the session's schema, dropping the session if it cannot connect.
func (s *Service) connect(ctx context.Context, credential, databaseID string, refresh bool) (*Session, entity.DestinationSchema, error) {
	sess, key, err := s.session(credential, databaseID)
	if err != nil {
		return nil, entity.DestinationSchema{}, err
	}
	var schema entity.DestinationSchema
	if refresh {
		schema, err = sess.Reconnect(ctx)
	} else {
		schema, err = sess.Connect(ctx)
	}
	if err != nil {
		s.drop(key)
		return nil, entity.DestinationSchema{}, err
	}
	return sess, schema, nil
}

// Connect tests the credential against the database and caches its schema.
func (s *Service) Connect(ctx context.Context, credential, databaseID string) (entity.DestinationSchema, error) {
	_, schema, err := s.connect(ctx, credential, databaseID, false)
	return schema, err
}

// Reconnect discards the cached schema and fetches it again.
func (s *Service) Reconnect(ctx context.Context, credential, databaseID string) (entity.DestinationSchema, error) {
	_, schema, err := s.connect(ctx, credential, databaseID, true)
	return schema, err
}

// UploadRecords maps and uploads records in order. The only error returned
// is a failure to obtain the schema; per-record failures live in the result.
func (s *Service) UploadRecords(ctx context.Context, records []entity.RawRecord, credential, databaseID string) (entity.BatchResult, error) {
	return s.run(ctx, constants.RunSourceRecords, records, credential, databaseID)
}

// UploadRecord is UploadRecords for a single record.
func (s *Service) UploadRecord(ctx context.Context, record entity.RawRecord, credential, databaseID string) (bool, string, error) {
	res, err := s.UploadRecords(ctx, []entity.RawRecord{record}, credential, databaseID)
	if err != nil {
		return false, "", err
	}
	r := res.Results[0]
	return r.Success, r.Message, nil
}

// Preview maps records against the schema without creating pages.
func (s *Service) Preview(ctx context.Context, records []entity.RawRecord, credential, databaseID string) ([]Preview, error) {
	_, schema, err := s.connect(ctx, credential, databaseID, false)
	if err != nil {
		return nil, err
	}

	out := make([]Preview, 0, len(records))
	for i, rec := range records {
		p := Preview{Index: i + 1}
		name, ok := mapper.DisplayName(rec)
		if !ok {
			name = Identifier(i + 1)
		}
		p.Identifier = name
		props, err := s.mapper.Build(rec, schema)
		if err != nil {
			p.Error = err.Error()
		} else {
			p.Properties = props
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) run(ctx context.Context, source constants.RunSource, records []entity.RawRecord, credential, databaseID string) (entity.BatchResult, error) {
	sess, schema, err := s.connect(ctx, credential, databaseID, false)
	if err != nil {
		return entity.BatchResult{}, err
	}

	runID := uuid.New().String()
	log := s.log.With("run_id", runID, "source", source)
	ctx = common.WithRunID(ctx, runID)

	uploader := NewUploader(sess.Destination(), sess.DatabaseID(), log)
	res := NewBatcher(s.mapper, uploader, schema, log).Run(ctx, records)
	res.RunID = runID

	if s.history != nil {
		if err := s.history.RecordBatch(ctx, source, sess.DatabaseID(), res); err != nil {
			log.Error("pipeline.history.record_error", "error", err)
		}
	}
	return res, nil
}

// Summary renders the aggregate line shown after a batch.
func Summary(res entity.BatchResult) string {
	if res.AllSucceeded() {
		return fmt.Sprintf("all records uploaded (%d/%d)", res.Succeeded(), res.Total())
	}
	return fmt.Sprintf("partial success: %d/%d uploaded", res.Succeeded(), res.Total())
}
