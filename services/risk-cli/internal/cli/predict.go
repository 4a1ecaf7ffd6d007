package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/nimeshabuddhika/credit-risk-api/pkg"
	"github.com/nimeshabuddhika/credit-risk-api/pkg/utils"
	urfave "github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	fileFlag = &urfave.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Path to a JSON prediction request (optional, defaults to a built-in sample)",
	}

	traceIDFlag = &urfave.StringFlag{
		Name:  "trace-id",
		Usage: "Trace id sent as " + pkg.HeaderTraceId + " (optional, generated when empty)",
	}

	predictCmd = &urfave.Command{
		Name:   "predict",
		Usage:  "Scores a credit application",
		Flags:  []urfave.Flag{fileFlag, traceIDFlag},
		Action: cmdPredict,
	}

	healthCmd = &urfave.Command{
		Name:   "health",
		Usage:  "Checks that the API is up",
		Action: cmdHealth,
	}
)

// sampleRequest mirrors the documented example applicant.
var sampleRequest = map[string]any{
	"EXT_SOURCE_3":        0.643026,
	"EXT_SOURCE_2":        0.90,
	"EXT_SOURCE_1":        0.675243,
	"AMT_CREDIT":          135801.6,
	"AMT_ANNUITY":         12345,
	"AMT_GOODS_PRICE":     123456,
	"Client_Age":          20,
	"employment_years":    3,
	"NAME_EDUCATION_TYPE": "Higher education",
	"ORGANIZATION_TYPE":   "Self-employed",
}

func loadRequest(path string) (map[string]any, error) {
	if path == "" {
		return sampleRequest, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	var req map[string]any
	if err := json.Unmarshal(b, &req); err != nil {
		return nil, fmt.Errorf("parsing request file %s: %w", path, err)
	}
	return req, nil
}

func endpoint(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

func cmdPredict(c *urfave.Context) error {
	cfg := getConfig(c)
	req, err := loadRequest(c.String(fileFlag.Name))
	if err != nil {
		return err
	}

	url := endpoint(cfg.BaseURL, "/api/v1/predict")
	cfg.Logger.Debug("posting prediction request", zap.String("url", url))

	client := utils.NewHTTPClient(utils.WithTimeout(cfg.Timeout))
	resp, err := utils.PostJSON(c.Context, client, url, c.String(traceIDFlag.Name), req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", url, err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}
	cfg.Logger.Debug("prediction response",
		zap.Int("status", resp.StatusCode),
		zap.String(pkg.TraceId, resp.Header.Get(pkg.HeaderTraceId)),
	)

	if err := encode(c.App.Writer, cfg.Format, body); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("prediction failed with status %d", resp.StatusCode)
	}
	return nil
}

func cmdHealth(c *urfave.Context) error {
	cfg := getConfig(c)
	url := endpoint(cfg.BaseURL, "/health")

	req, err := http.NewRequestWithContext(c.Context, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := utils.NewHTTPClient(utils.WithTimeout(cfg.Timeout)).Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", url, err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding health response: %w", err)
	}
	if err := encode(c.App.Writer, cfg.Format, body); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
