package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/Zakaria-Tajer/fx/internal/model"
	"github.com/Zakaria-Tajer/fx/internal/repository"
	"github.com/Zakaria-Tajer/fx/internal/validation"

	"github.com/rs/zerolog"
)

// csvMediaTypes are the declared content types accepted for an import file.
var csvMediaTypes = map[string]bool{
	"text/csv":                 true,
	"application/vnd.ms-excel": true,
}

// importService implements ImportService.
type importService struct {
	repo      repository.DealRepository
	validator validation.DealValidator
	parser    Parser
	logger    zerolog.Logger
}

// NewImportService creates a new import service.
func NewImportService(
	repo repository.DealRepository,
	validator validation.DealValidator,
	parser Parser,
	logger zerolog.Logger,
) ImportService {
	return &importService{
		repo:      repo,
		validator: validator,
		parser:    parser,
		logger:    logger.With().Str("service", "import").Logger(),
	}
}

// Import rejects the batch or processes every parsed row in file order.
func (s *importService) Import(ctx context.Context, upload model.Upload) (*model.ImportResult, error) {
	start := time.Now()

	body, err := s.checkUpload(upload)
	if err != nil {
		s.logger.Warn().
			Str("filename", upload.Filename).
			Str("content_type", upload.ContentType).
			Err(err).
			Msg("import rejected")
		return nil, err
	}

	deals, err := s.parser.Parse(body)
	if err != nil {
		s.logger.Warn().
			Str("filename", upload.Filename).
			Err(err).
			Msg("import rejected")
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, model.ErrInvalidCSV.Wrap(err)
	}

	result := model.NewImportResult()
	seen := make(map[string]struct{}, len(deals))

	for _, deal := range deals {
		if _, dup := seen[deal.DealID]; dup {
			result.AddDuplicate(fmt.Sprintf("Duplicate deal in file [%s] ignored.", deal.DealID))
			continue
		}
		seen[deal.DealID] = struct{}{}

		s.processDeal(ctx, deal, result)
	}

	s.logger.Info().
		Str("filename", upload.Filename).
		Int("rows", len(deals)).
		Int("saved", result.Saved).
		Int("duplicates", result.Duplicates).
		Int("invalid", result.Invalid).
		Dur("duration", time.Since(start)).
		Msg("import completed")

	return result, nil
}

// processDeal validates, checks the store and persists one deal that is unique within the batch.
func (s *importService) processDeal(ctx context.Context, deal model.Deal, result *model.ImportResult) {
	if err := s.validator.Validate(deal); err != nil {
		result.AddInvalid(fmt.Sprintf("Invalid deal [%s]: %s.", deal.DealID, reason(err)))
		return
	}

	exists, err := s.repo.ExistsByDealID(ctx, deal.DealID)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("deal_id", deal.DealID).
			Msg("existence check failed, relying on unique constraint")
	}
	if exists {
		result.AddDuplicate(fmt.Sprintf("Duplicate deal [%s] ignored.", deal.DealID))
		return
	}

	if err := s.repo.Create(ctx, &deal); err != nil {
		if errors.Is(err, model.ErrDuplicateDeal) {
			result.AddDuplicate(fmt.Sprintf("Duplicate deal [%s] ignored.", deal.DealID))
			return
		}
		s.logger.Error().
			Err(err).
			Str("deal_id", deal.DealID).
			Msg("failed to store deal")
		result.AddDuplicate(fmt.Sprintf("Deal [%s] could not be stored and was ignored.", deal.DealID))
		return
	}

	result.AddSaved()
}

// checkUpload applies the batch-level checks that precede parsing and returns
// a reader positioned at the start of the body.
func (s *importService) checkUpload(upload model.Upload) (io.Reader, error) {
	if upload.Body == nil {
		return nil, model.ErrEmptyFile
	}

	body := bufio.NewReader(upload.Body)
	if _, err := body.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, model.ErrEmptyFile
		}
		return nil, model.ErrInvalidCSV.Wrap(err)
	}

	if !isCSVUpload(upload.ContentType, upload.Filename) {
		return nil, model.ErrInvalidFileType
	}

	return body, nil
}

// isCSVUpload checks the declared media type and, when present, the filename suffix.
func isCSVUpload(contentType, filename string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !csvMediaTypes[strings.ToLower(mediaType)] {
		return false
	}

	if filename != "" && !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return false
	}

	return true
}

// reason extracts the rejection text from a validation error.
func reason(err error) string {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
