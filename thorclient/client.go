// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.


// Package thorclient provides a client for the Thor REST API.
package thorclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/vechain/thor-sdk-go/thor"
	"github.com/vechain/thor-sdk-go/tx"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultPollInterval = time.Second
	maxResponseSize     = 16 * 1024 * 1024
)

// ErrNotFound is returned when the node knows nothing about the requested object.
var ErrNotFound = errors.New("not found")

// HTTPError is returned by client operations when the HTTP status code of the
// response is not a 2xx status.
//
// HTTPError 由客户端操作在响应的 HTTP 状态码不是 2xx 状态时返回。
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (err *HTTPError) Error() string {
	if len(err.Body) == 0 {
		return err.Status
	}
	return fmt.Sprintf("%v: %s", err.Status, err.Body)
}

// Client defines typed wrappers for the Thor REST API.
// Client 结构体封装了 Thor REST API 的调用，提供类型化的方法以访问区块链数据。
type Client struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter // nil means unlimited
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient makes the client issue requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout bounds every request, including reading the response.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.client
		hc.Timeout = d
		c.client = &hc
	}
}

// WithRateLimit caps the client to rps requests per second. Zero or negative
// disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// New creates a client for the node at rawurl, e.g. https://mainnet.vechain.org.
// New 函数创建连接到指定节点 URL 的客户端。
func New(rawurl string, opts ...Option) (*Client, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	c := &Client{
		url:    strings.TrimRight(u.String(), "/"),
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the base URL of the node.
func (c *Client) URL() string { return c.url }

// Block returns the block at the given revision: "best", "finalized", a block
// number or a block id.
// Block 方法返回指定修订版本的区块。
func (c *Client) Block(ctx context.Context, revision string) (*Block, error) {
	var b *Block
	if err := c.do(ctx, http.MethodGet, "/blocks/"+url.PathEscape(revision), nil, &b); err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// BestBlock returns the head of the canonical chain.
func (c *Client) BestBlock(ctx context.Context) (*Block, error) {
	return c.Block(ctx, "best")
}

// GenesisBlock returns block zero.
func (c *Client) GenesisBlock(ctx context.Context) (*Block, error) {
	return c.Block(ctx, "0")
}

// ChainTag returns the chain tag of the network, the last byte of the genesis id.
// ChainTag 方法返回网络的链标签，即创世区块 ID 的最后一个字节。
func (c *Client) ChainTag(ctx context.Context) (byte, error) {
	genesis, err := c.GenesisBlock(ctx)
	if err != nil {
		return 0, err
	}
	return genesis.ID[thor.Bytes32Length-1], nil
}

// Account returns the state of an account at the best block.
func (c *Client) Account(ctx context.Context, addr thor.Address) (*Account, error) {
	var acc Account
	if err := c.do(ctx, http.MethodGet, "/accounts/"+addr.String(), nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// SendTransaction submits a finalized transaction to the pool and returns the id
// the node assigned to it. Transactions without a complete signature are refused
// with tx.ErrUnavailableTransactionField.
// SendTransaction 方法将交易提交到交易池，并返回节点计算的交易 ID。
func (c *Client) SendTransaction(ctx context.Context, trx *tx.Transaction) (thor.Bytes32, error) {
	if !trx.IsSigned() {
		return thor.Bytes32{}, fmt.Errorf("send transaction: %w: signature", tx.ErrUnavailableTransactionField)
	}
	req := struct {
		Raw string `json:"raw"`
	}{hexutil.Encode(trx.Encoded())}

	var resp struct {
		ID thor.Bytes32 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/transactions", &req, &resp); err != nil {
		return thor.Bytes32{}, err
	}
	return resp.ID, nil
}

// TransactionReceipt returns the receipt of a transaction. A nil receipt with a
// nil error means the transaction is not packed yet.
// TransactionReceipt 方法返回交易收据，交易尚未打包时返回 nil。
func (c *Client) TransactionReceipt(ctx context.Context, id thor.Bytes32) (*Receipt, error) {
	var r *Receipt
	if err := c.do(ctx, http.MethodGet, "/transactions/"+id.String()+"/receipt", nil, &r); err != nil {
		return nil, err
	}
	return r, nil
}

// WaitForReceipt polls for the receipt of a transaction every interval until it
// is available. It stops waiting when the context is canceled.
// WaitForReceipt 方法按间隔轮询交易收据，直到收据可用或上下文被取消。
func (c *Client) WaitForReceipt(ctx context.Context, id thor.Bytes32, interval time.Duration) (*Receipt, error) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	queryTicker := time.NewTicker(interval)
	defer queryTicker.Stop()

	logger := log.New("id", id)
	for {
		receipt, err := c.TransactionReceipt(ctx, id)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil {
			logger.Trace("Receipt retrieval failed", "err", err)
		} else {
			logger.Trace("Transaction not yet packed")
		}

		// Wait for the next round.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-queryTicker.C:
		}
	}
}

// do performs a JSON request against the node and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	log.Debug("Thor API request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", common.PrettyDuration(time.Since(start)))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       bytes.TrimSpace(data),
		}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
