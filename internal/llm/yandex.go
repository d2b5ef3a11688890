package llm

import (
	"context"
	"sync"
	"time"

	"github.com/Morwran/yagpt"
	"github.com/pkg/errors"
)

// iamTokenTTL is how long an exchanged IAM token is reused. Yandex issues
// tokens valid for at most 12h; renewing hourly stays well inside that.
const iamTokenTTL = time.Hour

// YandexClient calls YandexGPT. The IAM token is exchanged from the OAuth
// token on first use so bad credentials surface per request, not at startup,
// and re-exchanged once it is older than iamTokenTTL.
type YandexClient struct {
	oauthToken string
	folderID   string

	// seams
	exchange func(oauthToken string) (string, error)
	newModel func(folderID string) (yagpt.YaGPTFace, error)
	now      func() time.Time

	mu        sync.Mutex
	ya        yagpt.YaGPTFace
	iamToken  string
	expiresAt time.Time
}

func NewYandex(oauthToken, folderID string) *YandexClient {
	return &YandexClient{
		oauthToken: oauthToken,
		folderID:   folderID,
		exchange:   exchangeIAM,
		newModel:   newYagpt,
		now:        time.Now,
	}
}

func exchangeIAM(oauthToken string) (string, error) {
	iam, err := yagpt.NewYaIam(oauthToken)
	if err != nil {
		return "", errors.Wrap(err, "init yandex iam")
	}
	resp, err := iam.Create()
	if err != nil {
		return "", errors.Wrap(err, "create iam token")
	}
	return resp.IamToken, nil
}

func newYagpt(folderID string) (yagpt.YaGPTFace, error) {
	ya, err := yagpt.NewYagpt(folderID)
	if err != nil {
		return nil, errors.Wrap(err, "init yagpt")
	}
	return ya, nil
}

// session returns the model handle and a live IAM token, renewing the token
// when it has expired. A failed renewal keeps no stale token.
func (c *YandexClient) session() (yagpt.YaGPTFace, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ya == nil {
		ya, err := c.newModel(c.folderID)
		if err != nil {
			return nil, "", err
		}
		c.ya = ya
	}

	now := c.now()
	if c.iamToken == "" || !now.Before(c.expiresAt) {
		tok, err := c.exchange(c.oauthToken)
		if err != nil {
			c.iamToken, c.expiresAt = "", time.Time{}
			return nil, "", err
		}
		c.iamToken, c.expiresAt = tok, now.Add(iamTokenTTL)
	}
	return c.ya, c.iamToken, nil
}

func (c *YandexClient) Generate(ctx context.Context, messages []Message) (Response, error) {
	ya, token, err := c.session()
	if err != nil {
		return Response{}, err
	}

	yaMsgs := make([]yagpt.Message, 0, len(messages))
	for _, m := range messages {
		yaMsgs = append(yaMsgs, yagpt.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := ya.CompletionWithCtx(ctx, token, yaMsgs)
	if err != nil {
		return Response{}, errors.Wrap(err, "yagpt completion")
	}
	if resp == nil || len(resp.Alternatives) == 0 {
		return Response{}, ErrNoChoices
	}
	return Response{
		Content:          resp.Alternatives[0].Message.Content,
		Model:            string(yagpt.YaModelLite),
		PromptTokens:     int(resp.Usage.InputTextTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
	}, nil
}
