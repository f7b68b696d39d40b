package validators

import "go.mongodb.org/mongo-driver/bson"

// BookingDraftValidator guards the shape of persisted drafts. Drafts are
// partial by nature, so only the identity fields are required; everything
// else is constrained only when present.
var BookingDraftValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"campground_id",
			"schema_version",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"campground_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"schema_version": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"guest_id": bson.M{
				"bsonType": "string",
			},

			"arrival_date": bson.M{
				"bsonType": "string",
				"pattern":  "^\\d{4}-\\d{2}-\\d{2}$",
			},

			"departure_date": bson.M{
				"bsonType": "string",
				"pattern":  "^\\d{4}-\\d{2}-\\d{2}$",
			},

			"adults": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"children": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"pets": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"rig_type": bson.M{
				"bsonType": "string",
				"enum": []string{
					"motorhome",
					"travel-trailer",
					"fifth-wheel",
					"camper-van",
					"tent",
					"cabin",
					"group",
				},
			},

			"rig_length_ft": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  200,
			},

			"payment_method": bson.M{
				"bsonType": "string",
				"enum": []string{
					"card",
					"cash",
					"check",
					"folio",
				},
			},

			"payment_amount_cents": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"cash_received_cents": bson.M{
				"bsonType": "long",
				"minimum":  0,
			},

			"guest_address": bson.M{
				"bsonType": "object",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
