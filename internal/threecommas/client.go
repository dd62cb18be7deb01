package threecommas

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"trade-translator/internal/config"
	"trade-translator/internal/order"
)

const maxResponseBytes = 1 << 20

// TradeResponse 是智能交易接口的响应摘要。
type TradeResponse struct {
	Status string
	Raw    json.RawMessage
}

// Client 负责与 3Commas 接口交互，完成请求签名与重试。
type Client struct {
	cfg        config.APIConfig
	logger     *zap.Logger
	httpClient *http.Client

	// now 可在测试中替换，保证签名可验证。
	now func() time.Time
}

// NewClient 构造 3Commas 客户端。
func NewClient(cfg config.APIConfig, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("threecommas: base_url 不能为空")
	}
	if !cfg.DryRun && (cfg.Key == "" || cfg.Secret == "") {
		return nil, errors.New("threecommas: 非干跑模式必须配置 api key 与 secret")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		cfg:        cfg,
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
	}, nil
}

// CreateSimpleTrade 调用 /ver1/smart_trades/create_simple_{side} 创建智能交易。
// 订单方向只用于选择接口变体，不出现在请求体中。
func (c *Client) CreateSimpleTrade(ctx context.Context, side order.Side, payload order.Payload) (TradeResponse, error) {
	if side != order.SideBuy && side != order.SideSell {
		return TradeResponse{}, fmt.Errorf("threecommas: 非法的订单方向 %q", side)
	}

	endpoint := fmt.Sprintf("/ver1/smart_trades/create_simple_%s", side)

	body, err := json.Marshal(payload)
	if err != nil {
		return TradeResponse{}, fmt.Errorf("threecommas: 序列化请求体失败: %w", err)
	}

	if c.cfg.DryRun {
		c.logger.Info("干跑模式，跳过请求发送",
			zap.String("endpoint", endpoint),
			zap.ByteString("payload", body),
		)
		return TradeResponse{Status: "dry_run", Raw: body}, nil
	}

	var raw json.RawMessage
	err = c.callWithRetry(ctx, endpoint, func() error {
		result, postErr := c.post(ctx, endpoint, body)
		if postErr != nil {
			return postErr
		}
		raw = result
		return nil
	})
	if err != nil {
		return TradeResponse{}, err
	}

	return TradeResponse{Status: "ok", Raw: raw}, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("threecommas: 构造请求失败: %w", err)
	}

	req.Header.Set("APIKEY", c.cfg.Key)
	req.Header.Set("Signature", c.sign(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("threecommas: 读取响应失败: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}

// sign 计算请求签名：时间戳拼接请求体后做 HMAC-SHA256，
// 最终格式为 "<unix秒>:<十六进制摘要>"。
func (c *Client) sign(body []byte) string {
	timestamp := strconv.FormatInt(c.now().Unix(), 10)

	mac := hmac.New(sha256.New, []byte(c.cfg.Secret))
	mac.Write([]byte(timestamp))
	mac.Write(body)

	return timestamp + ":" + hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) callWithRetry(ctx context.Context, operation string, fn func() error) error {
	attempt := 0
	delay := c.cfg.Retry.MinDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	maxDelay := c.cfg.Retry.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 5 * time.Second
	}
	maxAttempts := c.cfg.Retry.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		attempt++
		start := time.Now()
		err := fn()
		duration := time.Since(start)
		if err == nil {
			if attempt > 1 {
				c.logger.Info("接口调用重试后成功",
					zap.String("operation", operation),
					zap.Int("attempts", attempt),
					zap.Duration("latency", duration),
				)
			}
			return nil
		}

		if !IsRetryable(err) || attempt >= maxAttempts {
			c.logger.Error("接口调用失败",
				zap.String("operation", operation),
				zap.Int("attempts", attempt),
				zap.Duration("latency", duration),
				zap.Error(err),
			)
			return err
		}

		wait := delay
		if wait > maxDelay {
			wait = maxDelay
		}

		c.logger.Warn("接口调用失败，等待重试",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
}
