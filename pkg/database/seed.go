package database

import (
	"deepeng_backend/internal/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedIfEmpty populates a fresh database with demo accounts, the A1
// starter modules, the base dictionary and the placement test. Runs are
// idempotent: a database that already has modules is left alone.
func SeedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Module{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	zap.L().Info("seeding empty database")

	teacher, err := seedUsers(db)
	if err != nil {
		return err
	}

	if err := seedDictionary(db); err != nil {
		return err
	}
	if err := seedModules(db, teacher.ID); err != nil {
		return err
	}
	if err := seedPlacementQuestions(db); err != nil {
		return err
	}

	zap.L().Info("database seeded")
	return nil
}

func seedUsers(db *gorm.DB) (*model.User, error) {
	hash := func(password string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return string(h)
	}

	teacher := &model.User{
		Username: "teacher123",
		FullName: "Main Teacher",
		Password: hash("teacher123"),
		Role:     model.Teacher,
	}
	if err := db.Create(teacher).Error; err != nil {
		return nil, err
	}

	student := &model.User{
		Username:  "student1",
		Phone:     "87001234567",
		FullName:  "Student Example",
		Password:  hash("password"),
		Role:      model.Student,
		Level:     model.A1,
		TeacherID: teacher.ID,
	}
	if err := db.Create(student).Error; err != nil {
		return nil, err
	}
	return teacher, nil
}

func seedDictionary(db *gorm.DB) error {
	words := map[string]string{
		"i": "я", "you": "ты / вы", "he": "он", "she": "она", "it": "оно",
		"we": "мы", "they": "они",
		"am": "есть (для я)", "is": "есть (для он/она/оно)", "are": "есть (для мы/вы/они)",
		"student": "студент / ученик", "brother": "брат", "friends": "друзья",
		"mother": "мама", "father": "папа", "sister": "сестра",
		"grandmother": "бабушка", "grandfather": "дедушка",
		"family": "семья", "members": "члены", "parents": "родители",
		"what": "что", "where": "где", "who": "кто",
		"hello": "привет", "goodbye": "пока",
		"cat": "кошка", "dog": "собака", "house": "дом", "car": "машина", "book": "книга",
	}
	for word, translation := range words {
		entry := model.DictionaryEntry{Word: word, Translation: translation}
		if err := db.Save(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

type seedExercise struct {
	typ         model.ExerciseType
	question    string
	options     string
	correct     string
	explanation string
}

func createModule(db *gorm.DB, creatorID uint, level model.CEFRLevel, typ model.ModuleType, title, description, content string, exercises []seedExercise) error {
	m := &model.Module{
		Level:       level,
		Type:        typ,
		Title:       title,
		Description: description,
		Content:     datatypes.JSON(content),
		CreatorID:   creatorID,
	}
	if err := db.Create(m).Error; err != nil {
		return err
	}
	for _, ex := range exercises {
		e := &model.Exercise{
			ModuleID:      m.ID,
			Type:          ex.typ,
			Question:      ex.question,
			Options:       datatypes.JSON(ex.options),
			CorrectAnswer: ex.correct,
			Explanation:   ex.explanation,
		}
		if err := db.Create(e).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedModules(db *gorm.DB, teacherID uint) error {
	grammarContent := `{
		"theory": [
			"**Что такое глагол TO BE?** Он означает 'быть', 'находиться', 'являться'. В русском языке мы его часто опускаем (например, 'Я студент'), но в английском он обязателен ('I am a student').",
			"Три формы в настоящем времени:",
			"1. **am** – используется только с 'I' (Я). \nПример: I am a student (Я студент).",
			"2. **is** – используется с 'He' (Он), 'She' (Она), 'It' (Оно). \nПример: He is my brother (Он мой брат).",
			"3. **are** – используется с 'We' (Мы), 'You' (Ты/Вы), 'They' (Они). \nПример: We are friends (Мы друзья)."
		],
		"ai_task": {
			"prompt": "Нажми 'Talk to AI'. Скажи 3 предложения о себе, используя 'am'. Пример: 'I am a student. I am 12 years old. I am from Kazakhstan.'",
			"system_message": "You are an English teacher for kids. The student is practicing the verb 'to be'. Check if they use 'am', 'is', 'are' correctly. Speak simply."
		},
		"reflection": ["Что было легко?", "Что показалось сложным?", "Как ты себя чувствуешь, используя 'to be'?"]
	}`
	err := createModule(db, teacherID, model.A1, model.Grammar,
		`Grammar A1: Глагол "to be"`,
		"Выучи самый главный глагол английского языка!",
		grammarContent,
		[]seedExercise{
			{model.MultipleChoice, "I ___ from Kazakhstan.", `["am","is","are","be"]`, "am", "С местоимением 'I' мы всегда используем 'am'."},
			{model.MultipleChoice, "My sister ___ 10 years old.", `["am","is","are","be"]`, "is", "Sister = She (Она). С She мы используем 'is'."},
			{model.MultipleChoice, "We ___ students.", `["am","is","are","be"]`, "are", "С местоимением 'We' (Мы) мы используем 'are'."},
		})
	if err != nil {
		return err
	}

	vocabContent := `{
		"theory": [
			"**Mother** – мама",
			"**Father** – папа",
			"**Sister** / **Brother** – сестра / брат",
			"**Grandmother** / **Grandfather** – бабушка / дедушка",
			"Попробуй назвать своих родных на английском!"
		],
		"ai_task": {
			"prompt": "Расскажи ИИ про свою семью. Скажи: 'This is my mother. Her name is...'",
			"system_message": "You are a kind teacher. Ask the student about their family names. 'What is your mother's name?'"
		},
		"reflection": ["Какие слова ты запомнил?", "Кого из семьи тебе легче всего назвать?"]
	}`
	err = createModule(db, teacherID, model.A1, model.Vocabulary,
		"Vocabulary A1: Моя Семья",
		"Выучи слова о членах семьи.",
		vocabContent,
		[]seedExercise{
			{model.MultipleChoice, "My father's father is my ___.", `["uncle","grandfather","cousin","brother"]`, "grandfather", "Father's father = Grandfather."},
			{model.MultipleChoice, "My mother's daughter is my ___.", `["aunt","grandmother","sister","mother"]`, "sister", "Mother's daughter is your sister (or you!)."},
			{model.Matching, "Соедини слова с переводом.", `[{"left":"mother","right":"мама"},{"left":"father","right":"папа"},{"left":"sister","right":"сестра"},{"left":"brother","right":"брат"}]`, "", "Повтори слова из теории."},
		})
	if err != nil {
		return err
	}

	readingContent := `{
		"theory": [
			"**Стратегии чтения**: Посмотри на картинки, найди знакомые слова, не пытайся перевести каждое слово.",
			"**Новые слова**: live (жить), with (с), pet (домашнее животное)."
		],
		"text": "Hello! My name is Aisulu. I am 11 years old. I live in Almaty with my family. We are a big family. I have a mother, a father, one brother and one sister. We have a cat named Tom.",
		"translation": "Привет! Меня зовут Айсулу. Мне 11 лет. Я живу в Алматы с семьей...",
		"ai_task": {
			"prompt": "Нажми 'Talk to AI'. ИИ задаст тебе вопросы по тексту.",
			"system_message": "You are a tutor. The student has ALREADY answered 'Where does she live?' and 'What is the cat's name?' in the exercises. DO NOT ASK THESE AGAIN. Instead, ask questions about relationships (e.g. 'Is her family big or small?'), logical deduction (e.g. 'How many children are in the family?'), or personal connection (e.g. 'Do you have a cat?'). Start with: 'Is Aisulu's family big?'"
		},
		"reflection": ["Сколько ты понял?", "Что было легко читать?"]
	}`
	err = createModule(db, teacherID, model.A1, model.Reading,
		`Reading A1: Текст "Моя Семья"`,
		"Прочитай текст про Айсулу и её семью.",
		readingContent,
		[]seedExercise{
			{model.MultipleChoice, "Where does Aisulu live?", `["Astana","Almaty","Shymkent","Aktobe"]`, "Almaty", "Text says: 'I live in Almaty'"},
			{model.MultipleChoice, "What is her pet's name?", `["Max","Tom","Kitty"]`, "Tom", "Text says: 'Its name is Tom'"},
		})
	if err != nil {
		return err
	}

	writingContent := `{
		"theory": [
			"**Writing Rules**: Start with capital letter. End with a dot (.).",
			"**Templates**:",
			"My name is ______.",
			"I am ______ years old.",
			"I am from ______.",
			"I have a ______."
		],
		"ai_task": {
			"prompt": "Write 5 sentences about yourself. Click 'Talk to AI' and paste them. AI will check your grammar.",
			"system_message": "You are a writing tutor. Correct the student's text. If they write 'i from almaty', correct to 'I am from Almaty'. Explain the mistake."
		},
		"reflection": ["What was easy?", "How do you feel about your writing?"]
	}`
	return createModule(db, teacherID, model.A1, model.Writing,
		"Writing A1: About Me",
		"Learn to write simple sentences about yourself.",
		writingContent,
		[]seedExercise{
			{model.MultipleChoice, "My ______ is Asel.", `["name","years","from"]`, "name", "My name is..."},
			{model.MultipleChoice, "I ______ 12 years old.", `["name","am","from"]`, "am", "I am..."},
		})
}

type seedQuestion struct {
	category model.PlacementCategory
	text     string
	question string
	options  string
	answer   string
}

func seedPlacementQuestions(db *gorm.DB) error {
	family := "**Family**\nI am Asel. I am 11 years old. I live in Almaty with my family. I have one brother and one sister. My brother is 15. My sister is 7. My father is a doctor. My mother is a teacher. We have a cat named Tom."
	nauryz := "**Nauryz**\nNauryz is a spring holiday in Kazakhstan. It is on March 22. People clean their homes. They cook nauryz-kozhe. This dish has 7 ingredients. Families visit each other. Children play games. It is a happy time."
	education := "**Education**\nThe education system in Kazakhstan is changing. Students now learn three languages: Kazakh, Russian and English. Some schools have special programs for math and science. Students use computers in class. This helps them learn better. But some schools need more books and teachers."
	ecology := "**Ecology**\nThe Aral Sea, once one of the world's largest lakes, has shrunk dramatically due to water diversion for irrigation. This ecological catastrophe has resulted in climate changes, health problems for local residents, and economic difficulties. Restoration efforts are underway, but the process is slow and complex. International organizations are involved in projects to mitigate the consequences and prevent similar disasters in other regions."

	questions := []seedQuestion{
		{model.PlacementVocabulary, "", "I have breakfast in the ___.", `["kitchen","garage","garden","balcony"]`, "kitchen"},
		{model.PlacementVocabulary, "", "My mother's brother is my ___.", `["aunt","uncle","cousin","nephew"]`, "uncle"},
		{model.PlacementVocabulary, "", "We learn English, Math and ___ at school.", `["football","subjects","books","History"]`, "History"},
		{model.PlacementVocabulary, "", "Beshbarmak is traditional Kazakh ___.", `["music","clothing","food","dance"]`, "food"},
		{model.PlacementVocabulary, "", "The dombra is a musical ___.", `["song","concert","instrument","player"]`, "instrument"},
		{model.PlacementVocabulary, "", "Baikonur is famous for ___ launches.", `["train","rocket","airplane","ship"]`, "rocket"},
		{model.PlacementVocabulary, "", "Please ___ the light when you leave.", `["turn off","turn on","turn up","turn down"]`, "turn off"},
		{model.PlacementVocabulary, "", "Education -> adjective:", `["educate","educative","educator","educational"]`, "educational"},
		{model.PlacementVocabulary, "", "Synonym for 'intelligent':", `["lazy","funny","smart","tall"]`, "smart"},
		{model.PlacementVocabulary, "", "Don't judge a book by its ___.", `["author","cover","price","title"]`, "cover"},
		{model.PlacementVocabulary, "", "She has a ___ knowledge of history.", `["wide","big","large","tall"]`, "wide"},
		{model.PlacementVocabulary, "", "Formal word for 'buy':", `["get","purchase","take","grab"]`, "purchase"},

		{model.PlacementGrammar, "", "She ___ to school every day.", `["go","goes","going","went"]`, "goes"},
		{model.PlacementGrammar, "", "There are three ___ on the table.", `["books","book","bookes","book's"]`, "books"},
		{model.PlacementGrammar, "", "This is ___ pen.", `["I","me","my","mine"]`, "my"},
		{model.PlacementGrammar, "", "Yesterday I ___ my homework.", `["do","did","done","doing"]`, "did"},
		{model.PlacementGrammar, "", "___ you please help me with this?", `["Do","Does","Will","Can"]`, "Can"},
		{model.PlacementGrammar, "", "She is ___ than her brother.", `["tall","taller","tallest","more tall"]`, "taller"},
		{model.PlacementGrammar, "", "If I ___ time, I would help you.", `["have","had","will have","would have"]`, "had"},
		{model.PlacementGrammar, "", "He asked me where ___.", `["do I live","I live","I lived","did I live"]`, "I lived"},
		{model.PlacementGrammar, "", "By next year, she ___ English for 5 years.", `["studies","will study","will be studying","will have studied"]`, "will have studied"},
		{model.PlacementGrammar, "", "Not only ___ late, but he also forgot the books.", `["he was","was he","he is","is he"]`, "was he"},
		{model.PlacementGrammar, "", "Had I known, ___ you.", `["I will help","I would help","I would have helped","I helped"]`, "I would have helped"},
		{model.PlacementGrammar, "", "The report, ___ last week, is very important.", `["written","writing","wrote","writes"]`, "written"},

		{model.PlacementReading, family, "How old is Asel's sister?", `["11","15","7","not mentioned"]`, "7"},
		{model.PlacementReading, family, "What is her father's job?", `["teacher","doctor","student","not mentioned"]`, "doctor"},
		{model.PlacementReading, nauryz, "When is Nauryz?", `["January 1","March 22","December 25","April 1"]`, "March 22"},
		{model.PlacementReading, nauryz, "How many ingredients in nauryz-kozhe?", `["5","12","10","7"]`, "7"},
		{model.PlacementReading, education, "How many languages do students learn?", `["1","2","3","4"]`, "3"},
		{model.PlacementReading, education, "What helps students learn better?", `["more homework","computers","longer lessons","bigger classrooms"]`, "computers"},
		{model.PlacementReading, ecology, "What caused the Aral Sea to shrink?", `["climate change","water diversion","pollution","earthquakes"]`, "water diversion"},
		{model.PlacementReading, ecology, "What is NOT mentioned as a consequence?", `["climate changes","health problems","economic difficulties","political conflicts"]`, "political conflicts"},
		{model.PlacementReading, ecology, "What is the current situation?", `["completely restored","getting worse","restoration is slow","abandoned"]`, "restoration is slow"},
	}

	for _, q := range questions {
		row := &model.PlacementQuestion{
			Category: q.category,
			Text:     q.text,
			Question: q.question,
			Options:  datatypes.JSON(q.options),
			Answer:   q.answer,
		}
		if err := db.Create(row).Error; err != nil {
			return err
		}
	}
	return nil
}
