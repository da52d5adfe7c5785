package database

import "testing"

func TestMongoDatabaseName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{uri: "mongodb://localhost:27017/goals", want: "goals"},
		{uri: "mongodb+srv://u:p@cluster.example.net/ledger?retryWrites=true", want: "ledger"},
		{uri: "mongodb://localhost:27017/", want: DefaultMongoDatabase},
		{uri: "mongodb://localhost:27017", want: DefaultMongoDatabase},
		{uri: "mongodb://localhost:27017/?tls=true", want: DefaultMongoDatabase},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			if got := MongoDatabaseName(tt.uri); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
