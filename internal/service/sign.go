package service

import (
	"context"
	"fmt"
	"log"

	"petition-backend/internal/captcha"
	"petition-backend/internal/fingerprint"
	"petition-backend/internal/models"
	"petition-backend/internal/ratelimit"
	"petition-backend/internal/validate"
)

// SignatureStore is the persistence capability the pipeline needs.
type SignatureStore interface {
	Append(ctx context.Context, record *models.SignatureRecord) error
	Total(ctx context.Context) (int64, error)
	ForEachBatch(ctx context.Context, batchSize int, fn func([]models.SignatureRecord) error) error
}

type SignService struct {
	validator *validate.Validator
	captcha   captcha.Verifier
	limiter   ratelimit.Limiter
	store     SignatureStore
}

func NewSignService(validator *validate.Validator, verifier captcha.Verifier, limiter ratelimit.Limiter, store SignatureStore) *SignService {
	return &SignService{
		validator: validator,
		captcha:   verifier,
		limiter:   limiter,
		store:     store,
	}
}

// Submit runs the gates strictly in order: validation, captcha, IP window,
// ID window, then the transactional append. Quota consumed by the two
// rate-limit checks stays consumed if a later step fails; losing a unit on a
// transient error is preferred over letting retries probe for free.
func (s *SignService) Submit(ctx context.Context, sub validate.Submission, clientIP string) error {
	normalized, fieldErrs := s.validator.Validate(sub)
	if fieldErrs.Any() {
		return &ValidationError{Fields: fieldErrs}
	}

	humanOK, err := s.captcha.Verify(ctx, normalized.CaptchaToken)
	if err != nil {
		log.Printf("Captcha verification error: %v", err)
	}
	if !humanOK {
		return ErrCaptchaRejected
	}

	ip := fingerprint.TruncateIP(clientIP)

	ipResult, err := s.limiter.CheckAndIncrement(ctx, ratelimit.DimensionIP, ip)
	if err != nil {
		return fmt.Errorf("ip rate limit check failed: %w", err)
	}
	if !ipResult.Allowed {
		return &RateLimitedError{Dimension: ratelimit.DimensionIP}
	}

	idResult, err := s.limiter.CheckAndIncrement(ctx, ratelimit.DimensionID, normalized.NumID())
	if err != nil {
		return fmt.Errorf("id rate limit check failed: %w", err)
	}
	if !idResult.Allowed {
		return &RateLimitedError{Dimension: ratelimit.DimensionID}
	}

	record := &models.SignatureRecord{
		Nom:           fingerprint.Canonical(normalized.Nom),
		Cognom1:       fingerprint.Canonical(normalized.Cognom1),
		Cognom2:       fingerprint.Canonical(normalized.Cognom2),
		DataNaixement: normalized.DataNaixement,
		TipusID:       normalized.TipusID,
		NumID:         normalized.NumID(),
		Address:       normalized.Address,
		Fingerprint: fingerprint.Signature(
			normalized.Nom,
			normalized.Cognom1,
			normalized.Cognom2,
			normalized.DataNaixement,
			normalized.TipusID,
		),
		IPFingerprint: fingerprint.IP(ip),
	}

	if err := s.store.Append(ctx, record); err != nil {
		return fmt.Errorf("failed to store signature: %w", err)
	}

	return nil
}

// Total returns the running signature counter.
func (s *SignService) Total(ctx context.Context) (int64, error) {
	return s.store.Total(ctx)
}
