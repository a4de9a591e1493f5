package aws_handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"

	"walter/src/models"
)

// ErrDelivery wraps email delivery failures.
var ErrDelivery = errors.New("delivery error")

type SESHandler struct {
	svc *ses.SES
}

func NewSESHandler(svc *ses.SES) *SESHandler {
	return &SESHandler{svc: svc}
}

// SendEmail delivers an HTML body with optional inline assets to a single
// recipient. Assets force the raw MIME path since SendEmail cannot carry
// attachments.
func (h *SESHandler) SendEmail(ctx context.Context, sender, recipient, subject, htmlBody string, assets []models.TemplateAsset) error {
	raw, err := buildRawMessage(sender, recipient, subject, htmlBody, assets)
	if err != nil {
		return fmt.Errorf("%w: build message for %s: %v", ErrDelivery, recipient, err)
	}

	_, err = h.svc.SendRawEmailWithContext(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(sender),
		Destinations: []*string{aws.String(recipient)},
		RawMessage:   &ses.RawMessage{Data: raw},
	})
	if err != nil {
		return fmt.Errorf("%w: send to %s: %v", ErrDelivery, recipient, err)
	}
	return nil
}

func buildRawMessage(sender, recipient, subject, htmlBody string, assets []models.TemplateAsset) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", sender)
	fmt.Fprintf(&buf, "To: %s\r\n", recipient)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/related; boundary=%q\r\n\r\n", writer.Boundary())

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", "text/html; charset=UTF-8")
	bodyPart, err := writer.CreatePart(bodyHeader)
	if err != nil {
		return nil, err
	}
	if _, err := bodyPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	for _, asset := range assets {
		header := textproto.MIMEHeader{}
		contentType := asset.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		header.Set("Content-Transfer-Encoding", "base64")
		header.Set("Content-ID", fmt.Sprintf("<%s>", asset.Name))
		header.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", asset.Name))

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, err
		}
		encoded := base64.StdEncoding.EncodeToString(asset.Data)
		if _, err := part.Write([]byte(encoded)); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
