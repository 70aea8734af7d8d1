// Package docs proxies the document workspace to the processing
// backend. Nothing is processed locally: each method assembles a
// multipart request from the user's files and parameters, forwards it,
// and hands the backend's bytes straight back.
package docs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/Soubhagyabehera/easyapply/internal/config"
	"github.com/Soubhagyabehera/easyapply/internal/errors"
	"github.com/Soubhagyabehera/easyapply/internal/telemetry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("easyapply/docs")

// File is one uploaded part of a tool request.
type File struct {
	Field string
	Name  string
	Data  io.Reader
}

// Result is the backend's processed artifact.
type Result struct {
	ContentType string
	FileName    string
	Body        []byte
}

// Tool names accepted by Forward; each maps to one backend route.
const (
	ToolPhotoEdit   = "photo-edit"
	ToolPDFMerge    = "pdf-merge"
	ToolPDFSplit    = "pdf-split"
	ToolPDFCompress = "pdf-compress"
	ToolSignature   = "signature"
	ToolScan        = "scan"
	ToolConvert     = "convert"
	ToolOptimize    = "optimize"
)

var toolRoutes = map[string]string{
	ToolPhotoEdit:   "/photo/edit",
	ToolPDFMerge:    "/pdf/merge",
	ToolPDFSplit:    "/pdf/split",
	ToolPDFCompress: "/pdf/compress",
	ToolSignature:   "/signature/create",
	ToolScan:        "/scan",
	ToolConvert:     "/convert",
	ToolOptimize:    "/optimize",
}

type ToolsClient struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

func NewToolsClient(logger *zap.Logger, cfg *config.Config) *ToolsClient {
	return &ToolsClient{
		client:  &http.Client{Timeout: cfg.ToolsAPITimeout},
		baseURL: strings.TrimSuffix(cfg.ToolsAPIBaseURL, "/"),
		logger:  logger,
	}
}

// Forward sends files and params to the named tool's backend route.
func (c *ToolsClient) Forward(ctx context.Context, tool string, files []File, params map[string]string) (*Result, error) {
	route, ok := toolRoutes[tool]
	if !ok {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown document tool: %s", tool), nil)
	}
	return c.post(ctx, route, files, params)
}

func (c *ToolsClient) EditPhoto(ctx context.Context, photo File, params map[string]string) (*Result, error) {
	return c.post(ctx, toolRoutes[ToolPhotoEdit], []File{photo}, params)
}

func (c *ToolsClient) MergePDFs(ctx context.Context, pdfs []File) (*Result, error) {
	return c.post(ctx, toolRoutes[ToolPDFMerge], pdfs, nil)
}

func (c *ToolsClient) SplitPDF(ctx context.Context, pdf File, pages string) (*Result, error) {
	return c.post(ctx, toolRoutes[ToolPDFSplit], []File{pdf}, map[string]string{"pages": pages})
}

func (c *ToolsClient) CompressPDF(ctx context.Context, pdf File, quality string) (*Result, error) {
	return c.post(ctx, toolRoutes[ToolPDFCompress], []File{pdf}, map[string]string{"quality": quality})
}

// CreateSignature takes no file: the params carry either the typed text
// or the serialized drawn strokes, and the backend rasterizes them.
func (c *ToolsClient) CreateSignature(ctx context.Context, params map[string]string) (*Result, error) {
	return c.post(ctx, toolRoutes[ToolSignature], nil, params)
}

func (c *ToolsClient) ScanDocument(ctx context.Context, capture File, params map[string]string) (*Result, error) {
	return c.post(ctx, toolRoutes[ToolScan], []File{capture}, params)
}

func (c *ToolsClient) ConvertFormat(ctx context.Context, doc File, target string) (*Result, error) {
	return c.post(ctx, toolRoutes[ToolConvert], []File{doc}, map[string]string{"target": target})
}

func (c *ToolsClient) OptimizeSize(ctx context.Context, doc File, targetKB string) (*Result, error) {
	return c.post(ctx, toolRoutes[ToolOptimize], []File{doc}, map[string]string{"targetKB": targetKB})
}

func (c *ToolsClient) post(ctx context.Context, route string, files []File, params map[string]string) (*Result, error) {
	ctx, span := tracer.Start(ctx, "docs.Forward")
	defer span.End()
	span.SetAttributes(
		telemetry.String("tool.route", route),
		telemetry.Int("tool.files", len(files)),
	)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		field := f.Field
		if field == "" {
			field = "file"
		}
		part, err := writer.CreateFormFile(field, f.Name)
		if err != nil {
			return nil, errors.Internal("building multipart body", err)
		}
		if _, err := io.Copy(part, f.Data); err != nil {
			return nil, errors.Internal("copying file into request", err)
		}
	}
	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return nil, errors.Internal("writing multipart field", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Internal("finalizing multipart body", err)
	}

	url := c.baseURL + route
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, errors.Internal("creating tool request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	span.SetAttributes(telemetry.String("request.id", requestID))

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("document tool request failed",
			zap.String("route", route),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, errors.Unavailable("document service unreachable", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Internal("reading tool response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("document tool returned error",
			zap.String("route", route),
			zap.Int("status_code", resp.StatusCode))
		return nil, errors.Unavailable(fmt.Sprintf("document tool failed with status %d", resp.StatusCode), nil)
	}

	c.logger.Debug("document tool succeeded",
		zap.String("route", route),
		zap.Int("bytes", len(body)))

	return &Result{
		ContentType: resp.Header.Get("Content-Type"),
		FileName:    fileNameFrom(resp.Header.Get("Content-Disposition")),
		Body:        body,
	}, nil
}

func fileNameFrom(disposition string) string {
	const marker = "filename="
	idx := strings.Index(disposition, marker)
	if idx < 0 {
		return ""
	}
	return strings.Trim(disposition[idx+len(marker):], `"`)
}
