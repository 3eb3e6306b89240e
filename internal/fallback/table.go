package fallback

import (
	"github.com/abhisek/trivia/internal/quiz"
	"github.com/abhisek/trivia/internal/topic"
)

func mc(prompt, correct string, options ...string) quiz.Question {
	return quiz.Question{
		Kind:          quiz.KindMultipleChoice,
		Prompt:        prompt,
		Options:       options,
		CorrectLetter: correct,
	}
}

func tf(prompt string, truth bool, explanation string) quiz.Question {
	return quiz.Question{
		Kind:        quiz.KindTrueFalse,
		Prompt:      prompt,
		Truth:       quiz.NewTruth(truth),
		Explanation: explanation,
	}
}

type seeds struct {
	multipleChoice [2]quiz.Question
	trueFalse      []quiz.Question
}

var table = map[topic.ID]seeds{
	topic.History: {
		multipleChoice: [2]quiz.Question{
			mc("In what year did World War II end?", "a", "1945", "1939", "1944", "1946"),
			mc("Who was the first president of the United States?", "a", "George Washington", "Thomas Jefferson", "Abraham Lincoln", "John Adams"),
		},
		trueFalse: []quiz.Question{
			tf("The French Revolution ended with the execution of Louis XVI.", false, "Louis XVI was executed in 1793; the revolution continued until 1799."),
			tf("The Great Wall of China is visible from space with the naked eye.", false, "It is far too narrow to be seen unaided from orbit."),
		},
	},
	topic.Culture: {
		multipleChoice: [2]quiz.Question{
			mc("Who painted the Mona Lisa?", "a", "Leonardo da Vinci", "Pablo Picasso", "Vincent van Gogh", "Michelangelo"),
			mc("Which writer wrote 'One Hundred Years of Solitude'?", "a", "Gabriel García Márquez", "Julio Cortázar", "Mario Vargas Llosa", "Pablo Neruda"),
		},
		trueFalse: []quiz.Question{
			tf("Vincent van Gogh cut off his entire ear.", false, "He cut off part of his left ear."),
			tf("Pablo Picasso is considered a founder of Cubism.", true, "He developed Cubism together with Georges Braque."),
		},
	},
	topic.Sports: {
		multipleChoice: [2]quiz.Question{
			mc("Which country won the 2018 FIFA World Cup?", "a", "France", "Croatia", "Brazil", "Germany"),
			mc("How many rings are on the Olympic flag?", "c", "4", "6", "5", "7"),
		},
		trueFalse: []quiz.Question{
			tf("Rafael Nadal has won Roland Garros more than 10 times.", true, "He won the tournament 14 times."),
			tf("FIFA was founded in 1950.", false, "FIFA was founded in 1904."),
		},
	},
	topic.Science: {
		multipleChoice: [2]quiz.Question{
			mc("What is the most abundant chemical element in the Earth's crust?", "a", "Oxygen", "Silicon", "Aluminium", "Iron"),
			mc("What is the chemical symbol for gold?", "b", "Ag", "Au", "Gd", "Go"),
		},
		trueFalse: []quiz.Question{
			tf("The main function of mitochondria is to produce energy for the cell.", true, "Mitochondria produce most of the cell's ATP."),
			tf("All mammals have seven cervical vertebrae.", true, "With very few exceptions, even giraffes have seven."),
		},
	},
	topic.Geography: {
		multipleChoice: [2]quiz.Question{
			mc("Which country is shaped like a boot?", "b", "Portugal", "Italy", "Chile", "Norway"),
			mc("What is the capital of Canada?", "a", "Ottawa", "Toronto", "Montreal", "Vancouver"),
		},
		trueFalse: []quiz.Question{
			tf("Australia is the smallest continent in the world.", true, "Australia is the smallest of the seven continents."),
			tf("The Nile is longer than the Amazon by every measurement.", false, "Depending on the source used, the Amazon can be measured as the longer river."),
		},
	},
}

// genericPair is served for topics with no table entry.
var genericPair = []quiz.Question{
	mc("What is the capital of France?", "a", "Paris", "London", "Madrid", "Rome"),
	mc("How many planets are in the solar system?", "a", "8", "9", "7", "10"),
}

// mixedTrueFalse closes every mixed quiz.
var mixedTrueFalse = tf("A mixed trivia contains questions from different categories.", true, "Mixed trivia draws one question from each topic.")
