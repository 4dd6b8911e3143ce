// Package repository implements the entity repositories on top of the
// ordered key-value store.
//
// Keyspace layout:
//
//	user/{userId}                        user record
//	username/{username}                  unique index -> user id
//	board/{ownerId}/{boardId}            board record
//	log/{boardId}/{date}                 one log per (board, date)
//	notification/{boardId}/{notifId}     notification record
package repository

import "github.com/habitboard/core/internal/infrastructure/storage"

const (
	kindUser         = "user"
	kindUsername     = "username"
	kindBoard        = "board"
	kindLog          = "log"
	kindNotification = "notification"
)

func userKey(userID string) storage.Key {
	return storage.Key{kindUser, userID}
}

func usernameKey(username string) storage.Key {
	return storage.Key{kindUsername, username}
}

func boardKey(ownerID, boardID string) storage.Key {
	return storage.Key{kindBoard, ownerID, boardID}
}

func boardScope(ownerID string) storage.Key {
	return storage.Key{kindBoard, ownerID}
}

func logKey(boardID, date string) storage.Key {
	return storage.Key{kindLog, boardID, date}
}

func logScope(boardID string) storage.Key {
	return storage.Key{kindLog, boardID}
}

func notificationKey(boardID, notificationID string) storage.Key {
	return storage.Key{kindNotification, boardID, notificationID}
}

func notificationScope(boardID string) storage.Key {
	return storage.Key{kindNotification, boardID}
}
