package firestore

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/govern-lab/aegis/pkg/domain/model/auth"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

type tokenDoc struct {
	ID        string    `firestore:"ID"`
	Secret    string    `firestore:"Secret"`
	Sub       string    `firestore:"Sub"`
	Email     string    `firestore:"Email"`
	Name      string    `firestore:"Name"`
	CreatedAt time.Time `firestore:"CreatedAt"`
	ExpiresAt time.Time `firestore:"ExpiresAt"`
}

func (f *Firestore) PutToken(ctx context.Context, token *auth.Token) error {
	doc := f.client.Collection(collectionTokens).Doc(string(token.ID))
	_, err := doc.Set(ctx, &tokenDoc{
		ID:        string(token.ID),
		Secret:    string(token.Secret),
		Sub:       token.Sub.String(),
		Email:     token.Email,
		Name:      token.Name,
		CreatedAt: token.CreatedAt,
		ExpiresAt: token.ExpiresAt,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put token")
	}
	return nil
}

func (f *Firestore) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	snap, err := f.client.Collection(collectionTokens).Doc(string(tokenID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "token not found")
		}
		return nil, goerr.Wrap(err, "failed to get token")
	}

	var d tokenDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal token")
	}

	return &auth.Token{
		ID:        auth.TokenID(d.ID),
		Secret:    auth.TokenSecret(d.Secret),
		Sub:       types.UserID(d.Sub),
		Email:     d.Email,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
	}, nil
}

func (f *Firestore) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	if _, err := f.client.Collection(collectionTokens).Doc(string(tokenID)).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete token")
	}
	return nil
}
