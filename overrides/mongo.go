package overrides

import (
	"context"
	"encoding/json"
	"time"

	"github.com/genisson-ifba/enem-backend-integrated/questions"
	"github.com/globalsign/mgo"
	"github.com/globalsign/mgo/bson"
	"github.com/pkg/errors"
)

// MongoSource reads published questions stored by the admin service as
// {year, question_id, question} documents.
type MongoSource struct {
	session    *mgo.Session
	dbName     string
	collection string
}

type publishedDoc struct {
	Year       int    `bson:"year"`
	QuestionID string `bson:"question_id"`
	Question   bson.M `bson:"question"`
}

func DialMongoSource(uri, dbName, collection string, timeout time.Duration) (*MongoSource, error) {
	if uri == "" {
		return nil, errors.New("mongo override source requires MONGO_URI")
	}
	session, err := mgo.DialWithTimeout(uri, timeout)
	if err != nil {
		return nil, errors.Wrap(err, "dialing mongo")
	}
	session.SetMode(mgo.Monotonic, true)
	session.SetSocketTimeout(timeout)
	Log.Infof("Using mongo override source %s.%s", dbName, collection)
	return &MongoSource{session: session, dbName: dbName, collection: collection}, nil
}

func (s *MongoSource) Published(ctx context.Context, year int, questionID string) (questions.Question, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	sess := s.session.Copy()
	defer sess.Close()

	doc := publishedDoc{}
	err := sess.DB(s.dbName).C(s.collection).Find(bson.M{"year": year, "question_id": questionID}).One(&doc)
	if err == mgo.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "querying published question %d/%s", year, questionID)
	}
	if doc.Question == nil {
		return nil, false, nil
	}
	q, err := toQuestion(doc.Question)
	if err != nil {
		return nil, false, err
	}
	return q, true, nil
}

func (s *MongoSource) Close() error {
	s.session.Close()
	return nil
}

// toQuestion converts nested bson.M values into plain JSON maps so the
// document looks the same as one read from any other source.
func toQuestion(m bson.M) (questions.Question, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "encoding published question")
	}
	q := questions.Question{}
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, errors.Wrap(err, "decoding published question")
	}
	return q, nil
}
