package types

import "muhasab-server/db"

type ServerAuth struct {
	UserId string
	User   *db.User
}
