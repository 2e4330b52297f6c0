package utils

import "go.mongodb.org/mongo-driver/v2/bson"

func Oid(hex string) (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(hex)
}

// Oids converts hex ids to ObjectIDs, skipping malformed entries. The
// reference lists on a user document are maintained by best-effort writes,
// so a stale or mangled id must not poison a whole $in query.
func Oids(hexes []string) []bson.ObjectID {
	oids := make([]bson.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		oid, err := bson.ObjectIDFromHex(h)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return oids
}
