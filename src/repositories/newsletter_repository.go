package repositories

import (
	"context"
	"fmt"
	"time"

	"walter/src/models"
	aws_handler "walter/src/utils/aws"
)

type NewsletterRepository interface {
	PutNewsletter(ctx context.Context, user *models.User, templateName, content string) error
}

type newsletterRepo struct {
	s3     *aws_handler.S3Handler
	bucket string
	now    func() time.Time
}

// NewNewsletterRepository archives rendered newsletters. Keys include the run
// date, so re-running a day's pipeline overwrites instead of appending.
func NewNewsletterRepository(s3 *aws_handler.S3Handler, bucket string) NewsletterRepository {
	return &newsletterRepo{s3: s3, bucket: bucket, now: time.Now}
}

func (r *newsletterRepo) PutNewsletter(ctx context.Context, user *models.User, templateName, content string) error {
	key := fmt.Sprintf("%s/%s/%s.html", user.Email, templateName, r.now().Format("2006-01-02"))
	return r.s3.PutObject(ctx, r.bucket, key, "text/html", []byte(content))
}
