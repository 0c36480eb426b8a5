package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/serverutils"

	"github.com/google/uuid"
)

// apiClient talks to the storefront REST API on behalf of one session.
type apiClient struct {
	baseURL   string
	sessionId uuid.UUID
	http      *http.Client
}

func newAPIClient(baseURL string, sessionId uuid.UUID) *apiClient {
	return &apiClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		sessionId: sessionId,
		http:      &http.Client{Timeout: 90 * time.Second}, // covers a slow assistant reply
	}
}

// apiError carries the message of a non-success envelope.
type apiError struct {
	Code    int
	Message string
	Fields  map[string]string
}

func (e *apiError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%d: %s", e.Code, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+" "+msg)
	}
	return fmt.Sprintf("%d: %s (%s)", e.Code, e.Message, strings.Join(parts, "; "))
}

func (c *apiClient) do(method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sessionId != uuid.Nil {
		req.Header.Set(serverutils.SessionHeader, c.sessionId.String())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope serverutils.BaseResponse[json.RawMessage]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("unexpected response (%s): %s", resp.Status, strings.TrimSpace(string(raw)))
	}
	if !envelope.Success {
		return &apiError{Code: resp.StatusCode, Message: envelope.Message, Fields: envelope.Errors}
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

func (c *apiClient) CreateSession() (uuid.UUID, error) {
	var res dto.CreateSessionResponse
	if err := c.do(http.MethodPost, "/session/v1", nil, &res); err != nil {
		return uuid.Nil, err
	}
	return res.SessionId, nil
}

func (c *apiClient) Categories() ([]*dto.CategoryResponse, error) {
	var res []*dto.CategoryResponse
	err := c.do(http.MethodGet, "/catalog/v1/categories", nil, &res)
	return res, err
}

func (c *apiClient) Products(categoryId, query string) ([]*dto.ProductResponse, error) {
	params := url.Values{}
	if categoryId != "" {
		params.Set("category_id", categoryId)
	}
	if query != "" {
		params.Set("q", query)
	}
	path := "/catalog/v1/products"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var res []*dto.ProductResponse
	err := c.do(http.MethodGet, path, nil, &res)
	return res, err
}

func (c *apiClient) Product(id uuid.UUID) (*dto.ProductResponse, error) {
	var res dto.ProductResponse
	if err := c.do(http.MethodGet, "/catalog/v1/products/"+id.String(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *apiClient) Cart() (*dto.CartResponse, error) {
	var res dto.CartResponse
	if err := c.do(http.MethodGet, "/cart/v1", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *apiClient) AddToCart(productId uuid.UUID) (*dto.CartResponse, error) {
	var res dto.CartResponse
	if err := c.do(http.MethodPost, "/cart/v1/items", dto.AddCartItemRequest{ProductId: productId}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *apiClient) UpdateQuantity(itemId uuid.UUID, quantity int) (*dto.CartResponse, error) {
	var res dto.CartResponse
	body := map[string]int{"quantity": quantity}
	if err := c.do(http.MethodPut, "/cart/v1/items/"+itemId.String(), body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *apiClient) RemoveFromCart(itemId uuid.UUID) (*dto.CartResponse, error) {
	var res dto.CartResponse
	if err := c.do(http.MethodDelete, "/cart/v1/items/"+itemId.String(), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *apiClient) PlaceOrder(req dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	var res dto.OrderResponse
	if err := c.do(http.MethodPost, "/order/v1", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *apiClient) Orders() ([]*dto.OrderResponse, error) {
	var res []*dto.OrderResponse
	err := c.do(http.MethodGet, "/order/v1", nil, &res)
	return res, err
}

func (c *apiClient) ChatHistory() ([]*dto.ChatMessageResponse, error) {
	var res []*dto.ChatMessageResponse
	err := c.do(http.MethodGet, "/chatbot/v1/messages", nil, &res)
	return res, err
}

func (c *apiClient) Chat(message string) (*dto.SendChatResponse, error) {
	var res dto.SendChatResponse
	if err := c.do(http.MethodPost, "/chatbot/v1/messages", dto.SendChatRequest{Message: message}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
