// Package objectstore copia los XML archivados a un almacén compatible con S3
// (AWS, Cloudflare R2, MinIO). Es secundario: el archivo local es la referencia.
package objectstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jhoicas/xrechnung-api/pkg/config"
)

const (
	keyPrefix   = "xrechnung/"
	keySuffix   = "_xrechnung.xml"
	contentType = "application/xml; charset=utf-8"
	metaSHA256  = "sha256"
)

// putter subconjunto de *s3.Client que usa el espejo.
type putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Mirror sube el XML bajo xrechnung/<número>_xrechnung.xml.
type S3Mirror struct {
	client putter
	bucket string
}

// NewS3Mirror crea el cliente. Con endpoint propio se usa path-style (MinIO/LocalStack).
func NewS3Mirror(ctx context.Context, cfg config.S3Config) (*S3Mirror, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("objectstore: cargar configuración AWS: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Mirror(client, cfg.Bucket), nil
}

func newS3Mirror(client putter, bucket string) *S3Mirror {
	return &S3Mirror{client: client, bucket: bucket}
}

// Key clave del objeto para un número de factura.
func Key(invoiceNumber string) string {
	return keyPrefix + invoiceNumber + keySuffix
}

// Put sube el documento con el SHA-256 en los metadatos y devuelve la clave.
func (m *S3Mirror) Put(ctx context.Context, invoiceNumber, xmlDoc, sha256 string) (string, error) {
	key := Key(invoiceNumber)
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(xmlDoc),
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{metaSHA256: sha256},
	})
	if err != nil {
		return "", fmt.Errorf("objectstore: subir s3://%s/%s: %w", m.bucket, key, err)
	}
	return key, nil
}
