package repository

import (
	"context"

	"trusthire/server/internal/model"
)

func (s *Store) CreateMessage(ctx context.Context, senderID, receiverID, content string) (model.Message, error) {
	msg := model.Message{SenderID: senderID, ReceiverID: receiverID, Content: content}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, read, created_at
	`, senderID, receiverID, content)
	if err := row.Scan(&msg.ID, &msg.Read, &msg.CreatedAt); err != nil {
		return model.Message{}, err
	}
	return msg, nil
}

// ListConversation returns both directions of a two-party thread in
// chronological order.
func (s *Store) ListConversation(ctx context.Context, userID, contactID string) ([]model.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, sender_id, receiver_id, content, read, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC
	`, userID, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []model.Message{}
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.Read, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// MarkConversationRead flags the contact's unread messages to the user
// as read.
func (s *Store) MarkConversationRead(ctx context.Context, userID, contactID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE messages
		SET read = TRUE
		WHERE sender_id = $1 AND receiver_id = $2 AND read = FALSE
	`, contactID, userID)
	return err
}

// ListContacts derives the contact list from message history: everyone
// the user has exchanged at least one message with.
func (s *Store) ListContacts(ctx context.Context, userID string) ([]model.Contact, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT other.id, COALESCE(p.full_name, '')
		FROM messages m
		JOIN users other ON other.id = CASE WHEN m.sender_id = $1 THEN m.receiver_id ELSE m.sender_id END
		LEFT JOIN profiles p ON p.user_id = other.id
		WHERE m.sender_id = $1 OR m.receiver_id = $1
		ORDER BY COALESCE(p.full_name, '') ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var contact model.Contact
		if err := rows.Scan(&contact.UserID, &contact.FullName); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}
