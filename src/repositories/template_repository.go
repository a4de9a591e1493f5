package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"path"

	"walter/src/models"
	aws_handler "walter/src/utils/aws"
)

type TemplateRepository interface {
	GetTemplateSpec(ctx context.Context, templateName string) (*models.TemplateSpec, error)
	GetTemplateText(ctx context.Context, templateName string) (string, error)
	GetTemplateAssets(ctx context.Context, templateName string) ([]models.TemplateAsset, error)
}

type templateRepo struct {
	s3     *aws_handler.S3Handler
	bucket string
}

// NewTemplateRepository reads template definitions out of the templates
// bucket. Layout: {name}/spec.json, {name}/template.html, {name}/assets/*.
func NewTemplateRepository(s3 *aws_handler.S3Handler, bucket string) TemplateRepository {
	return &templateRepo{s3: s3, bucket: bucket}
}

func (r *templateRepo) GetTemplateSpec(ctx context.Context, templateName string) (*models.TemplateSpec, error) {
	body, err := r.s3.GetObject(ctx, r.bucket, templateName+"/spec.json")
	if err != nil {
		return nil, err
	}
	var spec models.TemplateSpec
	if err := json.Unmarshal(body, &spec); err != nil {
		return nil, fmt.Errorf("parse spec for template %q: %w", templateName, err)
	}
	return &spec, nil
}

func (r *templateRepo) GetTemplateText(ctx context.Context, templateName string) (string, error) {
	body, err := r.s3.GetObject(ctx, r.bucket, templateName+"/template.html")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (r *templateRepo) GetTemplateAssets(ctx context.Context, templateName string) ([]models.TemplateAsset, error) {
	keys, err := r.s3.ListKeys(ctx, r.bucket, templateName+"/assets/")
	if err != nil {
		return nil, err
	}

	assets := make([]models.TemplateAsset, 0, len(keys))
	for _, key := range keys {
		data, err := r.s3.GetObject(ctx, r.bucket, key)
		if err != nil {
			return nil, err
		}
		name := path.Base(key)
		assets = append(assets, models.TemplateAsset{
			Name:        name,
			ContentType: mime.TypeByExtension(path.Ext(name)),
			Data:        data,
		})
	}
	return assets, nil
}
