package config

type WorkerKeyStruct struct {
	PersistAnswersQueue string
	RecalcScoresQueue   string
}

var WorkerKey = &WorkerKeyStruct{
	PersistAnswersQueue: "persist_answers_queue",
	RecalcScoresQueue:   "recalc_scores_queue",
}
